package protocol

// Q-format shifts for the physical fields.
const (
	TorqueShift   = 8  // N·m, int16
	VelocityShift = 7  // rad/s, int16
	PositionShift = 15 // rad, int32
	GainShift     = 15 // dimensionless [0,1], uint16
)

// Field masks in the mode byte: id[0:3] | mode[4:6].
const (
	idMask   = 0x0F
	modeMask = 0x07
)

// Layout pins down the variable parts of the frame format. Two header
// conventions exist in the field for this motor family; everything else is
// identical between them, so the layout carries the header bytes and the
// frame lengths rather than hard-coding either convention.
type Layout struct {
	Header      [2]byte
	CommandLen  int
	FeedbackLen int
}

// LayoutGO is the canonical layout for the GO-M8010-6.
var LayoutGO = Layout{
	Header:      [2]byte{0xAA, 0x55},
	CommandLen:  17,
	FeedbackLen: 16,
}

// LayoutLegacy is the header variant used by older firmware revisions.
// Field geometry matches LayoutGO.
var LayoutLegacy = Layout{
	Header:      [2]byte{0xFF, 0xFE},
	CommandLen:  17,
	FeedbackLen: 16,
}
