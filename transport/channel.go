// Package transport owns the duplex byte channel to the actuator bus and
// runs synchronous command/feedback exchanges over it.
package transport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Channel is the duplex byte stream the engine exchanges frames over.
// A channel is exclusively owned by one Engine; Read is expected to return
// within the channel's read timeout even when no bytes arrive.
type Channel interface {
	io.ReadWriteCloser

	// DiscardInput drops any bytes buffered on the receive side.
	DiscardInput() error
}

// SerialConfig describes the physical link. The motor bus is fixed at
// 8 data bits, no parity, 1 stop bit, no flow control.
type SerialConfig struct {
	Port        string
	Baud        int           // 4_000_000 for the GO-M8010-6 bus
	ReadTimeout time.Duration // per-Read bound; drives the engine poll granularity
}

type serialChannel struct {
	port serial.Port
}

// OpenSerial opens the serial link and applies the bus settings. The
// returned channel has its receive buffer cleared.
func OpenSerial(cfg SerialConfig) (Channel, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("transport: port required")
	}
	if cfg.Baud <= 0 {
		return nil, fmt.Errorf("transport: baud must be > 0")
	}

	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", cfg.Port, err)
	}

	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultPollInterval
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("transport: set read timeout: %w", err)
	}

	ch := &serialChannel{port: port}
	if err := ch.DiscardInput(); err != nil {
		port.Close()
		return nil, fmt.Errorf("transport: flush input: %w", err)
	}
	return ch, nil
}

func (c *serialChannel) Read(p []byte) (int, error)  { return c.port.Read(p) }
func (c *serialChannel) Write(p []byte) (int, error) { return c.port.Write(p) }
func (c *serialChannel) Close() error                { return c.port.Close() }

func (c *serialChannel) DiscardInput() error { return c.port.ResetInputBuffer() }
