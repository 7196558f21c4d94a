package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/lineup/cli"
	"github.com/twitter/lineup/common/errors"
	"github.com/twitter/lineup/common/log/hooks"
)

// lineup command-line tool, see cli for the commands.
func main() {
	log.AddHook(hooks.NewContextHook())
	log.SetOutput(os.Stderr)

	if err := cli.NewCLIClient(os.Stdout).Exec(); err != nil {
		log.Error(err)
		os.Exit(errors.ExitCodeOf(err))
	}
}
