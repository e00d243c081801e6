package engine

import (
	"context"
	"errors"
	"time"
)

// FrameFunc runs before each world step with the elapsed frame time
// Returning ErrStopRun ends Run without error
type FrameFunc func(elapsed time.Duration) error

// Run steps the engine at the configured frame rate until ctx is done or frame stops it
// Paused frames skip both frame and Step; the paused time is not carried into the next frame
func (e *Engine) Run(ctx context.Context, frame FrameFunc) error {
	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	last := e.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return nil
		}

		now := e.clock.Now()
		elapsed := now.Sub(last)
		last = now
		if e.paused.Load() {
			continue
		}

		if frame != nil {
			if err := frame(elapsed); err != nil {
				if errors.Is(err, ErrStopRun) {
					return nil
				}
				return err
			}
		}
		e.Step(elapsed)
	}
}
