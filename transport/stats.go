package transport

import "sync/atomic"

// stats holds monotonic per-engine counters. Updated lock-free so the
// snapshot can be read while an exchange is in flight.
type stats struct {
	exchanges uint64
	timeouts  uint64
	framing   uint64
	checksum  uint64
	writes    uint64
}

// Stats is an immutable snapshot of the link counters.
type Stats struct {
	Exchanges      uint64 // total transactions attempted
	Timeouts       uint64 // deadline expiries with insufficient bytes
	FramingErrors  uint64 // header never located in buffered bytes
	ChecksumErrors uint64 // frames discarded on CRC mismatch
	WriteErrors    uint64 // short or failed command writes
}

// Failed reports the total number of unsuccessful transactions.
func (s Stats) Failed() uint64 {
	return s.Timeouts + s.FramingErrors + s.ChecksumErrors + s.WriteErrors
}

func (s *stats) snapshot() Stats {
	return Stats{
		Exchanges:      atomic.LoadUint64(&s.exchanges),
		Timeouts:       atomic.LoadUint64(&s.timeouts),
		FramingErrors:  atomic.LoadUint64(&s.framing),
		ChecksumErrors: atomic.LoadUint64(&s.checksum),
		WriteErrors:    atomic.LoadUint64(&s.writes),
	}
}
