// Package device handles printer discovery and the byte transports a
// print session writes to.
package device

import (
	"fmt"

	"github.com/mizpos/print-engine/internal/escpos"
)

// Device describes one discovered or registered printer.
type Device struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // usb, serial, network
	VendorID    uint16 `json:"vendor_id,omitempty"`
	ProductID   uint16 `json:"product_id,omitempty"`
	Port        string `json:"port,omitempty"`
	Host        string `json:"host,omitempty"`
	TCPPort     int    `json:"tcp_port,omitempty"`
	Description string `json:"description"`
	Name        string `json:"name,omitempty"` // custom user-set name
}

// Open opens a transport for one print session. The session owns the
// handle exclusively and must Close it when the print finishes; there
// is no persistent connection between prints.
func Open(dev *Device) (Transport, error) {
	switch dev.Type {
	case "usb":
		return OpenUSB(dev.VendorID, dev.ProductID)
	case "serial":
		return OpenSerial(dev.Port, 0)
	case "network":
		return OpenNetwork(dev.Host, dev.TCPPort)
	default:
		return nil, fmt.Errorf("unknown device type: %s", dev.Type)
	}
}

// Transport is a closeable byte sink for one print session.
type Transport interface {
	escpos.Transport
	Close() error
}
