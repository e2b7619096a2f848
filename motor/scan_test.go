package motor

import (
	"context"
	"testing"
	"time"

	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

func TestScan_SilentBus(t *testing.T) {
	f := respondingTo()

	found := Scan(f, 0, 14, time.Microsecond)
	if len(found) != 0 {
		t.Fatalf("silent bus reported motors: %v", found)
	}
	if len(f.sent) != 15 {
		t.Fatalf("probed %d ids, want 15", len(f.sent))
	}
}

func TestScan_FindsResponders(t *testing.T) {
	f := respondingTo(0, 3, 9)

	found := Scan(f, 0, 14, time.Microsecond)
	want := []uint8{0, 3, 9}
	if len(found) != len(want) {
		t.Fatalf("found %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Fatalf("found %v, want %v", found, want)
		}
	}
}

func TestScan_RejectsMismatchedResponder(t *testing.T) {
	// A reply attributed to the wrong ID must not register the probed ID.
	f := &fakeExchanger{answers: map[uint8]protocol.Feedback{
		5: {MotorID: 7, Mode: protocol.ModeFOC, Valid: true},
	}}

	if found := Scan(f, 0, 14, time.Microsecond); len(found) != 0 {
		t.Fatalf("mismatched responder registered: %v", found)
	}
}

func TestScan_ExcludesBroadcast(t *testing.T) {
	f := respondingTo()
	Scan(f, 0, 15, time.Microsecond)

	for _, cmd := range f.sent {
		if cmd.MotorID == protocol.BroadcastID {
			t.Fatal("scan probed the broadcast id")
		}
	}
}

func TestMonitor_EmitsAndStops(t *testing.T) {
	f := respondingTo(2)
	s := newTestSession(t, f, 2)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan protocol.Feedback)

	go s.Monitor(ctx, time.Millisecond, out)

	fb := <-out
	if !fb.Valid || fb.MotorID != 2 {
		t.Fatalf("monitor feedback = %+v", fb)
	}

	// Cancellation must unblock the loop even mid-send.
	cancel()
}
