package motor

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

// Exchanger runs one command/feedback transaction. Satisfied by
// *transport.Engine; tests substitute fakes.
type Exchanger interface {
	Exchange(protocol.Command) (protocol.Feedback, error)
}

// DefaultDamping is the small kd applied when enabling or reading state, so
// the rotor is never left entirely undamped in closed loop.
const DefaultDamping = 0.01

// SessionConfig binds a session to one actuator.
type SessionConfig struct {
	MotorID uint8
	Type    Type
	KP      float64 // default position gain; used by Enable and State
	KD      float64 // default damping; zero selects DefaultDamping
	Logger  zerolog.Logger
}

// Session is a thin command constructor over an Exchanger. Every operation
// performs exactly one transaction and returns its feedback; callers must
// check Feedback.Valid semantics via the returned error.
type Session struct {
	ex  Exchanger
	id  uint8
	typ Type
	kp  float64
	kd  float64
	log zerolog.Logger
}

// NewSession validates the target ID and captures the defaults.
func NewSession(ex Exchanger, cfg SessionConfig) (*Session, error) {
	if ex == nil {
		return nil, errors.New("motor: exchanger required")
	}
	if cfg.MotorID > protocol.BroadcastID {
		return nil, errors.New("motor: id out of range")
	}
	if cfg.KD == 0 {
		cfg.KD = DefaultDamping
	}

	return &Session{
		ex:  ex,
		id:  cfg.MotorID,
		typ: cfg.Type,
		kp:  cfg.KP,
		kd:  cfg.KD,
		log: cfg.Logger,
	}, nil
}

// MotorID returns the bound actuator ID.
func (s *Session) MotorID() uint8 { return s.id }

// GearRatio returns the rotor-to-output reduction for the bound motor type.
// The session never applies it; command and feedback stay in rotor units.
func (s *Session) GearRatio() float64 { return s.typ.GearRatio() }

// SetDefaultGains overrides the gains used by Enable and State.
func (s *Session) SetDefaultGains(kp, kd float64) {
	s.kp = kp
	s.kd = kd
}

func (s *Session) command(mode protocol.Mode) protocol.Command {
	return protocol.Command{
		MotorID: s.id,
		Mode:    s.typ.WireMode(mode),
	}
}

// Enable puts the motor in closed loop with zero references and the default
// damping, holding it softly in place.
func (s *Session) Enable() (protocol.Feedback, error) {
	cmd := s.command(protocol.ModeFOC)
	cmd.KP = s.kp
	cmd.KD = s.kd
	return s.ex.Exchange(cmd)
}

// Disable brakes the motor: zero gains, zero references.
func (s *Session) Disable() (protocol.Feedback, error) {
	return s.ex.Exchange(s.command(protocol.ModeBrake))
}

// SetPosition commands a position target with PD gains and an optional
// feed-forward torque.
func (s *Session) SetPosition(pos, kp, kd, tauFF float64) (protocol.Feedback, error) {
	cmd := s.command(protocol.ModeFOC)
	cmd.Position = pos
	cmd.KP = kp
	cmd.KD = kd
	cmd.TauFF = tauFF
	return s.ex.Exchange(cmd)
}

// SetVelocity commands a velocity target with damping gain and an optional
// feed-forward torque.
func (s *Session) SetVelocity(vel, kd, tauFF float64) (protocol.Feedback, error) {
	cmd := s.command(protocol.ModeFOC)
	cmd.Velocity = vel
	cmd.KD = kd
	cmd.TauFF = tauFF
	return s.ex.Exchange(cmd)
}

// SetTorque commands a raw torque with both gains zeroed.
func (s *Session) SetTorque(tau float64) (protocol.Feedback, error) {
	cmd := s.command(protocol.ModeFOC)
	cmd.TauFF = tau
	return s.ex.Exchange(cmd)
}

// Calibrate starts the encoder calibration routine.
func (s *Session) Calibrate() (protocol.Feedback, error) {
	return s.ex.Exchange(s.command(protocol.ModeCalibrate))
}

// State reads the current feedback without disturbing the motor beyond the
// default soft damping.
func (s *Session) State() (protocol.Feedback, error) {
	cmd := s.command(protocol.ModeFOC)
	cmd.KD = s.kd
	return s.ex.Exchange(cmd)
}

// Shutdown sends a final brake command before the channel is released.
// Delivery is best effort: failure is logged as a warning and swallowed, so
// teardown paths never escalate over an undeliverable brake.
func (s *Session) Shutdown() {
	if _, err := s.Disable(); err != nil {
		s.log.Warn().Uint8("motor", s.id).Err(err).Msg("final brake command not delivered")
	}
}
