package hooks

import (
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

// contextHook tags every entry with the file:line of the caller that logged it.
type contextHook struct {
}

func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	if file := callerFrame(string(debug.Stack())); file != "" {
		entry.Data["file:line"] = file
	}
	return nil
}

// callerFrame walks a goroutine stack dump and returns the source position of
// the first frame outside logrus after the hook itself, trimmed to the path
// inside the module.
func callerFrame(stack string) string {
	lines := strings.Split(stack, "\n")
	foundHook := false
	for i := 0; i+1 < len(lines); i++ {
		fn := lines[i]
		if strings.Contains(fn, "contextHook") && strings.Contains(fn, "Fire(") {
			foundHook = true
			continue
		}
		if !foundHook || !strings.HasPrefix(lines[i+1], "\t") {
			continue
		}
		if strings.Contains(fn, "sirupsen/logrus") {
			continue
		}
		pos := strings.TrimSpace(lines[i+1])
		if idx := strings.LastIndex(pos, " +0x"); idx >= 0 {
			pos = pos[:idx]
		}
		ctx := strings.Split(pos, "lineup/")
		return ctx[len(ctx)-1]
	}
	return ""
}
