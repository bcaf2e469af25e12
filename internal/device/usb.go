package device

import (
	"fmt"
	"sync"

	"github.com/google/gousb"
)

// USBTransport writes to the OUT endpoint of a USB printer.
type USBTransport struct {
	ctx      *gousb.Context
	device   *gousb.Device
	iface    *gousb.Interface
	endpoint *gousb.OutEndpoint
	mu       sync.Mutex
}

// OpenUSB opens a USB printer by vendor/product ID and claims an
// interface with an OUT endpoint. It tries the default interface first
// and falls back to enumerating configurations, since cheap thermal
// printers disagree about which interface carries the print endpoint.
func OpenUSB(vid, pid uint16) (*USBTransport, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to open USB device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("device not found: %04X:%04X", vid, pid)
	}

	iface, _, err := dev.DefaultInterface()
	if err != nil {
		dev.SetAutoDetach(true)
		iface, _, err = dev.DefaultInterface()
	}
	if err == nil {
		if ep := findOutEndpoint(iface); ep != nil {
			return &USBTransport{ctx: ctx, device: dev, iface: iface, endpoint: ep}, nil
		}
		iface.Close()
	}

	// Default interface had no OUT endpoint; walk every configuration.
	for _, cfgDesc := range dev.Desc.Configs {
		cfg, err := dev.Config(cfgDesc.Number)
		if err != nil {
			continue
		}
		for _, ifaceDesc := range cfgDesc.Interfaces {
			iface, err := cfg.Interface(ifaceDesc.Number, 0)
			if err != nil {
				continue
			}
			if ep := findOutEndpoint(iface); ep != nil {
				return &USBTransport{ctx: ctx, device: dev, iface: iface, endpoint: ep}, nil
			}
			iface.Close()
		}
		cfg.Close()
	}

	dev.Close()
	ctx.Close()
	return nil, fmt.Errorf("no OUT endpoint found for USB printer %04X:%04X", vid, pid)
}

func findOutEndpoint(iface *gousb.Interface) *gousb.OutEndpoint {
	for _, epDesc := range iface.Setting.Endpoints {
		if epDesc.Direction == gousb.EndpointDirectionOut {
			if ep, err := iface.OutEndpoint(epDesc.Number); err == nil {
				return ep
			}
		}
	}
	return nil
}

// Write sends data to the printer's OUT endpoint.
func (t *USBTransport) Write(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.endpoint.Write(data); err != nil {
		return fmt.Errorf("usb write failed: %w", err)
	}
	return nil
}

// Flush is a no-op: bulk OUT transfers are not buffered host-side.
func (t *USBTransport) Flush() error {
	return nil
}

// Close releases the interface, device and USB context.
func (t *USBTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.iface != nil {
		t.iface.Close()
	}
	if t.device != nil {
		t.device.Close()
	}
	if t.ctx != nil {
		return t.ctx.Close()
	}
	return nil
}
