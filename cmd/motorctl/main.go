// cmd/motorctl/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/umas2022/MultiAxisController-go8010/internal/config"
	"github.com/umas2022/MultiAxisController-go8010/motor"
	"github.com/umas2022/MultiAxisController-go8010/protocol"
	"github.com/umas2022/MultiAxisController-go8010/transport"
)

const usage = `usage: motorctl <config.yaml> <command> [args]

commands:
  scan                                 probe the bus for responsive motor ids
  enable <id>                          closed loop, soft damping hold
  disable <id>                         brake
  calibrate <id>                       start encoder calibration
  position <id> <rad> [kp kd tauff]    position target
  velocity <id> <rad/s> [kd tauff]     velocity target
  torque <id> <N.m>                    raw torque
  monitor <id> [interval_ms]           continuous feedback until interrupted
`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "motorctl").Logger()

	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfgPath, command, args := os.Args[1], os.Args[2], os.Args[3:]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	// --------------------
	// Open channel, build engine
	// --------------------

	ch, err := transport.OpenSerial(transport.SerialConfig{
		Port:        cfg.Link.Port,
		Baud:        cfg.Link.Baud,
		ReadTimeout: time.Duration(cfg.Link.PollIntervalUs) * time.Microsecond,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("channel open failed")
	}

	layout := protocol.LayoutGO
	if cfg.Link.LegacyHeader {
		layout = protocol.LayoutLegacy
	}

	eng := transport.NewEngine(ch, transport.Options{
		Layout:       layout,
		Deadline:     time.Duration(cfg.Link.TimeoutMs) * time.Millisecond,
		PollInterval: time.Duration(cfg.Link.PollIntervalUs) * time.Microsecond,
		SettleDelay:  time.Duration(cfg.Link.SettleDelayUs) * time.Microsecond,
		Logger:       log,
	})
	defer eng.Close()

	if err := run(command, args, cfg, eng, log); err != nil {
		logStats(log, eng)
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
	logStats(log, eng)
}

func run(command string, args []string, cfg *config.Config, eng *transport.Engine, log zerolog.Logger) error {
	switch command {
	case "scan":
		found := motor.Scan(eng, cfg.Scan.From, cfg.Scan.To,
			time.Duration(cfg.Scan.DelayMs)*time.Millisecond)
		if len(found) == 0 {
			log.Info().Msg("no motors responded")
			return nil
		}
		for _, id := range found {
			log.Info().Uint8("id", id).Msg("motor found")
		}
		return nil

	case "enable", "disable", "calibrate":
		s, err := session(args, 1, cfg, eng, log)
		if err != nil {
			return err
		}
		var fb protocol.Feedback
		switch command {
		case "enable":
			fb, err = s.Enable()
		case "disable":
			fb, err = s.Disable()
		case "calibrate":
			fb, err = s.Calibrate()
		}
		if err != nil {
			return err
		}
		logFeedback(log, fb)
		return nil

	case "position":
		s, err := session(args, 2, cfg, eng, log)
		if err != nil {
			return err
		}
		pos, err := floatArg(args, 1, "rad")
		if err != nil {
			return err
		}
		kp := optFloat(args, 2, 0.1)
		kd := optFloat(args, 3, motor.DefaultDamping)
		tauFF := optFloat(args, 4, 0)

		fb, err := s.SetPosition(pos, kp, kd, tauFF)
		if err != nil {
			return err
		}
		logFeedback(log, fb)
		return nil

	case "velocity":
		s, err := session(args, 2, cfg, eng, log)
		if err != nil {
			return err
		}
		vel, err := floatArg(args, 1, "rad/s")
		if err != nil {
			return err
		}
		kd := optFloat(args, 2, 0.1)
		tauFF := optFloat(args, 3, 0)

		fb, err := s.SetVelocity(vel, kd, tauFF)
		if err != nil {
			return err
		}
		logFeedback(log, fb)
		return nil

	case "torque":
		s, err := session(args, 2, cfg, eng, log)
		if err != nil {
			return err
		}
		tau, err := floatArg(args, 1, "N.m")
		if err != nil {
			return err
		}

		fb, err := s.SetTorque(tau)
		if err != nil {
			return err
		}
		logFeedback(log, fb)
		return nil

	case "monitor":
		s, err := session(args, 1, cfg, eng, log)
		if err != nil {
			return err
		}
		interval := time.Duration(optFloat(args, 1, 100)) * time.Millisecond
		return monitor(s, interval, log)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// monitor streams feedback until interrupted, then attempts one final brake
// command. Its delivery is best effort and never fails the run.
func monitor(s *motor.Session, interval time.Duration, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := make(chan protocol.Feedback)
	go s.Monitor(ctx, interval, out)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("interrupted, braking motor")
			s.Shutdown()
			return nil
		case fb := <-out:
			if fb.Valid {
				logFeedback(log, fb)
			}
		}
	}
}

// session builds a Session for the id in args[0], applying the motor's
// configured type and default gains when it is listed in the config.
func session(args []string, minArgs int, cfg *config.Config, eng *transport.Engine, log zerolog.Logger) (*motor.Session, error) {
	if len(args) < minArgs || len(args) < 1 {
		return nil, fmt.Errorf("missing arguments (want motor id first)")
	}
	id64, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil || id64 >= protocol.BroadcastID {
		return nil, fmt.Errorf("motor id %q must be in [0,14]", args[0])
	}
	id := uint8(id64)

	sc := motor.SessionConfig{MotorID: id, Type: motor.TypeGoM8010, Logger: log}
	for _, m := range cfg.Motors {
		if m.ID != id {
			continue
		}
		typ, err := motor.ParseType(m.Type)
		if err != nil {
			return nil, err
		}
		sc.Type = typ
		sc.KP = m.KP
		sc.KD = m.KD
		break
	}

	return motor.NewSession(eng, sc)
}

func floatArg(args []string, i int, what string) (float64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s argument", what)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s argument %q", what, args[i])
	}
	return v, nil
}

func optFloat(args []string, i int, def float64) float64 {
	if len(args) <= i {
		return def
	}
	if v, err := strconv.ParseFloat(args[i], 64); err == nil {
		return v
	}
	return def
}

func logFeedback(log zerolog.Logger, fb protocol.Feedback) {
	ev := log.Info().
		Uint8("id", fb.MotorID).
		Float64("pos_rad", fb.Position).
		Float64("vel_rad_s", fb.Velocity).
		Float64("tau_nm", fb.Torque).
		Int8("temp_c", fb.Temperature)
	if fb.ErrorCode != 0 {
		ev = ev.Uint8("fault", fb.ErrorCode)
	}
	ev.Msg("feedback")
}

func logStats(log zerolog.Logger, eng *transport.Engine) {
	st := eng.Stats()
	if st.Exchanges == 0 {
		return
	}
	log.Debug().
		Uint64("exchanges", st.Exchanges).
		Uint64("timeouts", st.Timeouts).
		Uint64("framing", st.FramingErrors).
		Uint64("checksum", st.ChecksumErrors).
		Uint64("write_errors", st.WriteErrors).
		Msg("link stats")
}
