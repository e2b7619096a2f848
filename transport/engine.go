package transport

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

// Defaults for the 4 Mbaud motor bus. A full 16-byte feedback frame takes
// roughly 40 µs on the wire; the 20 ms deadline leaves ample margin for the
// controller's processing time.
const (
	DefaultDeadline     = 20 * time.Millisecond
	DefaultPollInterval = 100 * time.Microsecond
	DefaultSettleDelay  = 200 * time.Microsecond
)

// Options tune one engine. Zero values select the defaults.
type Options struct {
	Layout       protocol.Layout // frame layout; zero value selects LayoutGO
	Deadline     time.Duration   // per-transaction response deadline
	PollInterval time.Duration   // idle sleep between read polls
	SettleDelay  time.Duration   // pause between write and first read; negative disables
	Logger       zerolog.Logger
}

// Engine executes synchronous command/feedback transactions over an
// exclusively owned channel. Exchanges are serialized internally; the
// engine never retries a failed transaction.
type Engine struct {
	ch  Channel
	opt Options
	log zerolog.Logger

	mu sync.Mutex
	st stats
}

// NewEngine wraps the channel. The engine takes ownership; close it through
// the engine, not the channel.
func NewEngine(ch Channel, opt Options) *Engine {
	if opt.Layout.CommandLen == 0 {
		opt.Layout = protocol.LayoutGO
	}
	if opt.Deadline <= 0 {
		opt.Deadline = DefaultDeadline
	}
	if opt.PollInterval <= 0 {
		opt.PollInterval = DefaultPollInterval
	}
	if opt.SettleDelay == 0 {
		opt.SettleDelay = DefaultSettleDelay
	}

	return &Engine{ch: ch, opt: opt, log: opt.Logger}
}

// Layout returns the frame layout this engine speaks.
func (e *Engine) Layout() protocol.Layout { return e.opt.Layout }

// Stats returns a snapshot of the link counters.
func (e *Engine) Stats() Stats { return e.st.snapshot() }

// Close releases the channel.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ch.Close()
}

// Exchange performs one command/feedback transaction: flush stale input,
// write the command frame, then accumulate response bytes under the
// deadline, resynchronizing on the header if the stream is misaligned.
// On any failure the returned Feedback is zero-valued with Valid false.
func (e *Engine) Exchange(cmd protocol.Command) (protocol.Feedback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var fb protocol.Feedback
	atomic.AddUint64(&e.st.exchanges, 1)

	// Idle: stale bytes from an earlier partial exchange must not be
	// mistaken for this transaction's response.
	if err := e.ch.DiscardInput(); err != nil {
		atomic.AddUint64(&e.st.writes, 1)
		return fb, fmt.Errorf("%w: flush stale input: %v", ErrWrite, err)
	}

	frame := cmd.Encode(e.opt.Layout)
	n, err := e.ch.Write(frame)
	if err != nil {
		atomic.AddUint64(&e.st.writes, 1)
		return fb, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if n < len(frame) {
		atomic.AddUint64(&e.st.writes, 1)
		return fb, fmt.Errorf("%w: short write %d of %d bytes", ErrWrite, n, len(frame))
	}

	if e.opt.SettleDelay > 0 {
		time.Sleep(e.opt.SettleDelay)
	}

	raw, err := e.awaitFeedback()
	if err != nil {
		e.log.Debug().Uint8("motor", cmd.MotorID).Err(err).Msg("transaction failed")
		return fb, err
	}

	fb, err = protocol.DecodeFeedback(raw, e.opt.Layout)
	if err != nil {
		if errors.Is(err, protocol.ErrChecksum) {
			atomic.AddUint64(&e.st.checksum, 1)
		}
		e.log.Debug().Uint8("motor", cmd.MotorID).Hex("rx", raw).Err(err).Msg("feedback rejected")
		return fb, err
	}
	return fb, nil
}

// awaitFeedback polls the channel until a header-aligned frame of
// FeedbackLen bytes has accumulated or the deadline expires. Realignment
// runs before the length check so stray bytes ahead of a valid frame do
// not starve it.
func (e *Engine) awaitFeedback() ([]byte, error) {
	fbLen := e.opt.Layout.FeedbackLen
	deadline := time.Now().Add(e.opt.Deadline)

	buf := make([]byte, 0, 2*fbLen)
	tmp := make([]byte, fbLen)
	received := 0
	headerFound := false

	for {
		if len(buf) >= 2 {
			aligned := protocol.Realign(buf, e.opt.Layout)
			if aligned == nil {
				// Header may still straddle the next read; keep the last
				// byte in case it is the first header byte.
				buf = append(buf[:0], buf[len(buf)-1])
			} else {
				headerFound = true
				buf = aligned
				if len(buf) >= fbLen {
					return buf[:fbLen], nil
				}
			}
		}

		if !time.Now().Before(deadline) {
			if !headerFound && received >= fbLen {
				atomic.AddUint64(&e.st.framing, 1)
				return nil, fmt.Errorf("%w: %d bytes received", ErrFraming, received)
			}
			atomic.AddUint64(&e.st.timeouts, 1)
			return nil, fmt.Errorf("%w: %d of %d bytes after %v", ErrTimeout, len(buf), fbLen, e.opt.Deadline)
		}

		n, err := e.ch.Read(tmp)
		if err != nil {
			atomic.AddUint64(&e.st.timeouts, 1)
			return nil, fmt.Errorf("feedback read: %w", err)
		}
		if n == 0 {
			time.Sleep(e.opt.PollInterval)
			continue
		}
		buf = append(buf, tmp[:n]...)
		received += n
	}
}
