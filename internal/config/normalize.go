// internal/config/normalize.go
package config

// Link and scan defaults for the GO-M8010-6 bus.
const (
	DefaultBaud           = 4_000_000
	DefaultTimeoutMs      = 20
	DefaultPollIntervalUs = 100
	DefaultSettleDelayUs  = 200
	DefaultScanDelayMs    = 50
	DefaultMotorType      = "go-m8010-6"
)

// Normalize applies post-validation defaulting.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Link.Baud == 0 {
		cfg.Link.Baud = DefaultBaud
	}
	if cfg.Link.TimeoutMs == 0 {
		cfg.Link.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Link.PollIntervalUs == 0 {
		cfg.Link.PollIntervalUs = DefaultPollIntervalUs
	}
	if cfg.Link.SettleDelayUs == 0 {
		cfg.Link.SettleDelayUs = DefaultSettleDelayUs
	}

	for i := range cfg.Motors {
		if cfg.Motors[i].Type == "" {
			cfg.Motors[i].Type = DefaultMotorType
		}
	}

	if cfg.Scan.DelayMs == 0 {
		cfg.Scan.DelayMs = DefaultScanDelayMs
	}
}
