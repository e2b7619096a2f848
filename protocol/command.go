package protocol

import "encoding/binary"

// Mode is the actuator control mode carried in every command.
type Mode uint8

const (
	ModeBrake     Mode = 0 // rotor locked
	ModeFOC       Mode = 1 // closed-loop field-oriented control
	ModeCalibrate Mode = 2 // encoder calibration
)

// BroadcastID addresses all actuators on the bus; no single attributable
// reply should be expected.
const BroadcastID = 15

// Command is one control frame addressed to a single actuator.
// Fields are physical units; quantization happens at encode time.
type Command struct {
	MotorID  uint8
	Mode     Mode
	TauFF    float64 // feed-forward torque, N·m
	Velocity float64 // velocity reference, rad/s
	Position float64 // position reference, rad
	KP       float64 // position stiffness, [0,1]
	KD       float64 // velocity damping, [0,1]
}

// Encode serializes the command into a CommandLen-byte frame:
// header(2) mode(1) torque(2,Q8) velocity(2,Q7) position(4,Q15)
// kp(2,uQ15) kd(2,uQ15) crc(2), all little-endian. Gains are clamped to
// [0,1] before quantization; id and mode are masked to their bit widths.
func (c Command) Encode(l Layout) []byte {
	buf := make([]byte, l.CommandLen)
	buf[0] = l.Header[0]
	buf[1] = l.Header[1]
	buf[2] = c.MotorID&idMask | byte(c.Mode&modeMask)<<4

	binary.LittleEndian.PutUint16(buf[3:5], uint16(int16(ToFixed(c.TauFF, TorqueShift, 16, true))))
	binary.LittleEndian.PutUint16(buf[5:7], uint16(int16(ToFixed(c.Velocity, VelocityShift, 16, true))))
	binary.LittleEndian.PutUint32(buf[7:11], uint32(int32(ToFixed(c.Position, PositionShift, 32, true))))
	binary.LittleEndian.PutUint16(buf[11:13], uint16(ToFixed(clamp01(c.KP), GainShift, 16, false)))
	binary.LittleEndian.PutUint16(buf[13:15], uint16(ToFixed(clamp01(c.KD), GainShift, 16, false)))

	crc := CRC16(buf[:l.CommandLen-2], CRCSeed)
	binary.LittleEndian.PutUint16(buf[l.CommandLen-2:], crc)
	return buf
}
