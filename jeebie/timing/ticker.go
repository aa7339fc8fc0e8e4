package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
type TickerLimiter struct {
	ticker *time.Ticker
	ch     <-chan time.Time
}

// NewTickerLimiter creates a Limiter paced to the real Game Boy frame rate.
func NewTickerLimiter() *TickerLimiter {
	ticker := time.NewTicker(FrameDuration())
	return &TickerLimiter{
		ticker: ticker,
		ch:     ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(FrameDuration())
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
