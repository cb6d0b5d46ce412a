package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/shapereg/qp"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one regularization pass and reports its outcome.
type progress struct {
	logger *log.Logger
	pass   string // "angles" or "offsets"
	start  time.Time
}

func newProgress(l *log.Logger, pass string) *progress {
	return &progress{logger: l, pass: pass, start: time.Now()}
}

// done logs st at info level, or at warn level when the solver did not
// converge on a pass that had pairs to solve.
func (p *progress) done(st passStats) {
	kv := []any{
		"pass", p.pass,
		"pairs", st.Pairs,
		"modified", st.Modified,
		"iterations", st.Iterations,
		"status", st.Status,
		"elapsed", time.Since(p.start).Round(time.Millisecond),
	}
	if st.Pairs > 0 && st.Status != qp.StatusSolved.String() {
		p.logger.Warn("pass finished without convergence", kv...)
		return
	}
	p.logger.Info("pass finished", kv...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
