package motor

import (
	"time"

	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

// DefaultScanDelay spaces consecutive probe transactions so replies on a
// shared bus cannot overlap.
const DefaultScanDelay = 50 * time.Millisecond

// Scan probes every ID in [from, to] sequentially with a zero-reference FOC
// command and collects the IDs whose reply decodes and matches the probed
// ID. A silent bus yields an empty slice, not an error; per-ID failures are
// expected and swallowed.
func Scan(ex Exchanger, from, to uint8, delay time.Duration) []uint8 {
	if delay <= 0 {
		delay = DefaultScanDelay
	}
	if to >= protocol.BroadcastID {
		to = protocol.BroadcastID - 1
	}

	var found []uint8
	for id := from; id <= to; id++ {
		cmd := protocol.Command{
			MotorID: id,
			Mode:    protocol.ModeFOC,
			KD:      DefaultDamping,
		}

		fb, err := ex.Exchange(cmd)
		if err == nil && fb.Valid && fb.MotorID == id {
			found = append(found, id)
		}

		if id < to {
			time.Sleep(delay)
		}
	}
	return found
}
