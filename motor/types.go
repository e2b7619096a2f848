// Package motor binds a motor identity and default gains to named control
// operations, and provides bus-level helpers (ID scan, continuous monitor).
package motor

import (
	"fmt"

	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

// Type identifies the actuator family. It fixes the gear ratio and the
// mapping from logical modes to the wire status value.
type Type int

const (
	TypeA1 Type = iota
	TypeB1
	TypeGoM8010
)

// ParseType maps a config string to a motor type.
func ParseType(s string) (Type, error) {
	switch s {
	case "a1":
		return TypeA1, nil
	case "b1":
		return TypeB1, nil
	case "go-m8010-6":
		return TypeGoM8010, nil
	}
	return 0, fmt.Errorf("unknown motor type %q", s)
}

func (t Type) String() string {
	switch t {
	case TypeA1:
		return "a1"
	case TypeB1:
		return "b1"
	case TypeGoM8010:
		return "go-m8010-6"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// GearRatio is the fixed reduction between rotor and output shaft. Sessions
// expose it for callers to apply; command and feedback fields stay in rotor
// units.
func (t Type) GearRatio() float64 {
	switch t {
	case TypeA1:
		return 9.73
	case TypeB1:
		return 6.0
	case TypeGoM8010:
		return 6.0
	}
	return 1.0
}

// WireMode converts a logical mode to the status value this motor type
// expects on the wire. For the supported families brake maps to the locked
// rotor status, FOC to closed loop and calibrate to encoder calibration.
func (t Type) WireMode(m protocol.Mode) protocol.Mode {
	// The RIS status values coincide with the logical mode numbering.
	return m
}
