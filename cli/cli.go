package cli

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLIClient holds the root command and the settings shared by subcommands.
type CLIClient struct {
	RootCmd  *cobra.Command
	LogLevel string
	Out      io.Writer
}

// Command interface used to run client commands
type cmd interface {
	registerFlags() *cobra.Command
	run(cl *CLIClient, cmd *cobra.Command, args []string) error
}

func (c *CLIClient) Exec() error {
	return c.RootCmd.Execute()
}

// NewCLIClient builds the lineup command tree. Output goes to out, stdout
// when nil.
func NewCLIClient(out io.Writer) *CLIClient {
	if out == nil {
		out = os.Stdout
	}
	c := &CLIClient{Out: out}

	c.RootCmd = &cobra.Command{
		Use:               "lineup",
		Short:             "lineup picks salary-capped fantasy rosters",
		PersistentPreRunE: c.Init,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	c.RootCmd.SetOut(out)
	c.RootCmd.PersistentFlags().StringVar(&c.LogLevel, "log_level", "info", "Log everything at this level and above (error|info|debug)")

	c.addCmd(&optimizeCmd{})
	c.addCmd(&presetsCmd{})

	return c
}

// Can only be called from cobra command run or hook
func (c *CLIClient) Init(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Error(err)
		return err
	}
	log.SetLevel(level)
	return nil
}

func (c *CLIClient) addCmd(cmd cmd) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.RootCmd.AddCommand(cobraCmd)
}
