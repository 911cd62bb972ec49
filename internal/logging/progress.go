package logging

import "go.uber.org/zap"

// Progress receives fire-and-forget batch progress notifications.
type Progress interface {
	OnProgress(done, total int)
	OnMessage(text string)
}

// ZapProgress forwards progress to a logger at info level.
type ZapProgress struct {
	Logger *zap.Logger
}

// NewProgress returns a Progress that logs through l.
func NewProgress(l *zap.Logger) *ZapProgress {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapProgress{Logger: l}
}

func (p *ZapProgress) OnProgress(done, total int) {
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}
	p.Logger.Info("progress", zap.Int("done", done), zap.Int("total", total), zap.Float64("percent", pct))
}

func (p *ZapProgress) OnMessage(text string) {
	p.Logger.Info(text)
}

// Discard is a Progress that drops everything.
type Discard struct{}

func (Discard) OnProgress(int, int) {}
func (Discard) OnMessage(string)    {}
