package motor

import (
	"context"
	"time"

	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

// Monitor reads feedback on a fixed clock and emits every result on out.
// One goroutine per session. No overlap, no retries; failed reads surface as
// zero-valued feedback with Valid false so consumers see the gap.
func (s *Session) Monitor(ctx context.Context, interval time.Duration, out chan<- protocol.Feedback) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fb, err := s.State()
			if err != nil {
				s.log.Debug().Uint8("motor", s.id).Err(err).Msg("monitor read failed")
			}
			select {
			case out <- fb:
			case <-ctx.Done():
				return
			}
		}
	}
}
