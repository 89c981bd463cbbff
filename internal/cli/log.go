package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled log lines stamped with wall-clock time down to
// hundredths of a second ("14:32:01.45"), which is enough to see how long a
// bower call took.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a command such as install or formulae.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the time since newProgress in parentheses:
// "Installed 2 bundles (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
