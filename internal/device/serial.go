package device

import (
	"fmt"
	"sync"

	"github.com/tarm/serial"
)

// SerialTransport writes to a serial-attached printer.
type SerialTransport struct {
	port *serial.Port
	mu   sync.Mutex
}

// OpenSerial opens a serial printer. Baud 0 selects 9600, the default
// for most thermal printers.
func OpenSerial(devicePath string, baud int) (*SerialTransport, error) {
	if baud == 0 {
		baud = 9600
	}

	port, err := serial.OpenPort(&serial.Config{Name: devicePath, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}

	return &SerialTransport{port: port}, nil
}

// Write sends data to the serial port.
func (t *SerialTransport) Write(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.port.Write(data); err != nil {
		return fmt.Errorf("serial write failed: %w", err)
	}
	return nil
}

// Flush drains the OS transmit buffer.
func (t *SerialTransport) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.port.Flush(); err != nil {
		return fmt.Errorf("serial flush failed: %w", err)
	}
	return nil
}

// Close closes the port.
func (t *SerialTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port != nil {
		return t.port.Close()
	}
	return nil
}
