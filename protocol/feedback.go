package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Feedback is the decoded state of one actuator after an exchange.
// Valid reports whether header and CRC checks passed; when false, the
// physical fields carry no information and must not be used.
type Feedback struct {
	MotorID     uint8
	Mode        Mode
	Torque      float64 // N·m
	Velocity    float64 // rad/s
	Position    float64 // rad
	Temperature int8    // °C
	ErrorCode   uint8   // 3-bit fault flag, 0 = none
	FootForce   uint16  // 12-bit raw sole pressure sensor
	Valid       bool
}

// DecodeFeedback parses one feedback frame:
// header(2) mode(1) torque(2,Q8) velocity(2,Q7) position(4,Q15) temp(1,i8)
// errforce(2: err[0:2] force[3:14]) crc(2), little-endian. The returned
// error distinguishes ErrTooShort, ErrBadHeader and ErrChecksum.
func DecodeFeedback(buf []byte, l Layout) (Feedback, error) {
	var fb Feedback

	if len(buf) < l.FeedbackLen {
		return fb, fmt.Errorf("%w: have %d bytes, need %d", ErrTooShort, len(buf), l.FeedbackLen)
	}
	if buf[0] != l.Header[0] || buf[1] != l.Header[1] {
		return fb, fmt.Errorf("%w: got %02X %02X", ErrBadHeader, buf[0], buf[1])
	}

	want := binary.LittleEndian.Uint16(buf[l.FeedbackLen-2 : l.FeedbackLen])
	got := CRC16(buf[:l.FeedbackLen-2], CRCSeed)
	if got != want {
		return fb, fmt.Errorf("%w: computed %04X, frame carries %04X", ErrChecksum, got, want)
	}

	fb.MotorID = buf[2] & idMask
	fb.Mode = Mode(buf[2] >> 4 & modeMask)
	fb.Torque = FromFixed(int64(int16(binary.LittleEndian.Uint16(buf[3:5]))), TorqueShift)
	fb.Velocity = FromFixed(int64(int16(binary.LittleEndian.Uint16(buf[5:7]))), VelocityShift)
	fb.Position = FromFixed(int64(int32(binary.LittleEndian.Uint32(buf[7:11]))), PositionShift)
	fb.Temperature = int8(buf[11])

	// err[0:2] | force[3:14] | reserved[15]
	errForce := binary.LittleEndian.Uint16(buf[12:14])
	fb.ErrorCode = uint8(errForce & 0x07)
	fb.FootForce = errForce >> 3 & 0x0FFF

	fb.Valid = true
	return fb, nil
}

// Realign slices buf so that it starts at the first occurrence of the
// layout's header, discarding any stray bytes before it. Returns buf
// unchanged when it already starts with the header, or nil when the header
// is absent.
func Realign(buf []byte, l Layout) []byte {
	idx := bytes.Index(buf, l.Header[:])
	if idx < 0 {
		return nil
	}
	return buf[idx:]
}
