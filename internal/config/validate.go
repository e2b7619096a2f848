// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/umas2022/MultiAxisController-go8010/motor"
	"github.com/umas2022/MultiAxisController-go8010/protocol"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// LINK VALIDATION
	// ------------------------------------------------------------

	if cfg.Link.Port == "" {
		return fmt.Errorf("link: port is required")
	}
	if cfg.Link.Baud < 0 {
		return fmt.Errorf("link: baud must be >= 0 (0 selects the default)")
	}
	if cfg.Link.TimeoutMs < 0 || cfg.Link.PollIntervalUs < 0 || cfg.Link.SettleDelayUs < 0 {
		return fmt.Errorf("link: timings must be >= 0")
	}

	// ------------------------------------------------------------
	// MOTOR VALIDATION
	// ------------------------------------------------------------

	// id 15 is the bus broadcast address and cannot be a session target
	seen := make(map[uint8]bool)

	for _, m := range cfg.Motors {
		if m.ID >= protocol.BroadcastID {
			return fmt.Errorf("motor %d: id must be in [0,14] (15 is broadcast)", m.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("motor %d: duplicate id", m.ID)
		}
		seen[m.ID] = true

		if m.Type != "" {
			if _, err := motor.ParseType(m.Type); err != nil {
				return fmt.Errorf("motor %d: %w", m.ID, err)
			}
		}

		if m.KP < 0 || m.KP > 1 {
			return fmt.Errorf("motor %d: kp %v outside [0,1]", m.ID, m.KP)
		}
		if m.KD < 0 || m.KD > 1 {
			return fmt.Errorf("motor %d: kd %v outside [0,1]", m.ID, m.KD)
		}
	}

	// ------------------------------------------------------------
	// SCAN VALIDATION
	// ------------------------------------------------------------

	if cfg.Scan.From > cfg.Scan.To {
		return fmt.Errorf("scan: from %d > to %d", cfg.Scan.From, cfg.Scan.To)
	}
	if cfg.Scan.To >= protocol.BroadcastID {
		return fmt.Errorf("scan: to must be < %d", protocol.BroadcastID)
	}
	if cfg.Scan.DelayMs < 0 {
		return fmt.Errorf("scan: delay_ms must be >= 0")
	}

	return nil
}
