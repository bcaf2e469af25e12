package device

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultNetworkPort is the raw-socket print port.
const DefaultNetworkPort = 9100

// NetworkTransport writes to a network printer over a raw TCP socket.
type NetworkTransport struct {
	conn net.Conn
	mu   sync.Mutex
}

// OpenNetwork dials a network printer. Port 0 selects the standard
// raw print port.
func OpenNetwork(host string, port int) (*NetworkTransport, error) {
	if port == 0 {
		port = DefaultNetworkPort
	}

	address := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to network printer: %w", err)
	}

	return &NetworkTransport{conn: conn}, nil
}

// Write sends data to the socket.
func (t *NetworkTransport) Write(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.conn.Write(data); err != nil {
		return fmt.Errorf("network write failed: %w", err)
	}
	return nil
}

// Flush is a no-op; the kernel owns the socket send buffer.
func (t *NetworkTransport) Flush() error {
	return nil
}

// Close closes the socket.
func (t *NetworkTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
