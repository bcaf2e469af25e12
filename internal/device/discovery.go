package device

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/gousb"
	"github.com/tarm/serial"
	"go.uber.org/zap"

	"github.com/mizpos/print-engine/internal/registry"
)

// Manager discovers printers and tracks them by persistent ID.
type Manager struct {
	registry *registry.Registry
	logger   *zap.Logger
	devices  map[string]*Device
	mu       sync.RWMutex

	onAdded   func(*Device)
	onRemoved func(string)
}

// NewManager creates a manager backed by the identity registry at
// registryPath.
func NewManager(registryPath string, logger *zap.Logger) (*Manager, error) {
	reg, err := registry.New(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	return &Manager{
		registry: reg,
		logger:   logger,
		devices:  make(map[string]*Device),
	}, nil
}

// Detect scans USB and serial buses for printers and refreshes the
// device table. Network printers are registered manually and survive
// rescans.
func (m *Manager) Detect() ([]*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var devices []*Device

	usbDevices, err := m.detectUSB()
	if err != nil {
		m.logger.Warn("USB detection failed", zap.Error(err))
	} else {
		devices = append(devices, usbDevices...)
	}

	serialDevices, err := m.detectSerial()
	if err != nil {
		m.logger.Warn("serial detection failed", zap.Error(err))
	} else {
		devices = append(devices, serialDevices...)
	}

	// Keep manually added network printers across rescans.
	for _, d := range m.devices {
		if d.Type == "network" {
			devices = append(devices, d)
		}
	}

	previous := m.devices
	m.devices = make(map[string]*Device, len(devices))
	for _, d := range devices {
		m.devices[d.ID] = d
		if _, known := previous[d.ID]; !known && m.onAdded != nil {
			m.onAdded(d)
		}
	}
	for id := range previous {
		if _, still := m.devices[id]; !still && m.onRemoved != nil {
			m.onRemoved(id)
		}
	}

	return devices, nil
}

// Get returns a device by ID, or nil.
func (m *Manager) Get(id string) *Device {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.devices[id]
}

// All returns every known device.
func (m *Manager) All() []*Device {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Device, 0, len(m.devices))
	for _, d := range m.devices {
		result = append(result, d)
	}
	return result
}

// SetName stores a custom display name for a device.
func (m *Manager) SetName(id, name string) bool {
	if !m.registry.SetName(id, name) {
		return false
	}

	m.mu.Lock()
	if d, ok := m.devices[id]; ok {
		d.Name = name
	}
	m.mu.Unlock()
	return true
}

// AddNetwork registers a network printer by address.
func (m *Manager) AddNetwork(host string, port int, description string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if port == 0 {
		port = DefaultNetworkPort
	}
	if description == "" {
		description = fmt.Sprintf("Network: %s:%d", host, port)
	}

	info := registry.DeviceInfo{
		Type:        "network",
		Host:        host,
		Port:        port,
		Description: description,
	}
	id := m.registry.GetID(info)

	m.devices[id] = &Device{
		ID:          id,
		Type:        "network",
		Host:        host,
		TCPPort:     port,
		Description: description,
		Name:        m.registry.GetName(id),
	}
	return id
}

// OnAdded registers a callback fired when a rescan finds a new device.
func (m *Manager) OnAdded(fn func(*Device)) {
	m.onAdded = fn
}

// OnRemoved registers a callback fired when a device disappears.
func (m *Manager) OnRemoved(fn func(string)) {
	m.onRemoved = fn
}

// detectUSB enumerates printer-class USB devices.
func (m *Manager) detectUSB() ([]*Device, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var devices []*Device

	opened, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	for _, dev := range opened {
		desc := dev.Desc

		if !isPrinterClass(desc) {
			dev.Close()
			continue
		}

		manufacturer, _ := dev.Manufacturer()
		product, _ := dev.Product()

		description := fmt.Sprintf("USB: %04X:%04X", desc.Vendor, desc.Product)
		if manufacturer != "" || product != "" {
			description = fmt.Sprintf("USB: %s %s (%04X:%04X)",
				manufacturer, product, desc.Vendor, desc.Product)
		}

		info := registry.DeviceInfo{
			Type:        "usb",
			VID:         uint16(desc.Vendor),
			PID:         uint16(desc.Product),
			Description: description,
		}
		id := m.registry.GetID(info)

		devices = append(devices, &Device{
			ID:          id,
			Type:        "usb",
			VendorID:    uint16(desc.Vendor),
			ProductID:   uint16(desc.Product),
			Description: description,
			Name:        m.registry.GetName(id),
		})
		dev.Close()
	}

	return devices, nil
}

func isPrinterClass(desc *gousb.DeviceDesc) bool {
	if desc.Class == gousb.ClassPrinter {
		return true
	}
	for _, cfg := range desc.Configs {
		for _, iface := range cfg.Interfaces {
			for _, alt := range iface.AltSettings {
				if alt.Class == gousb.ClassPrinter {
					return true
				}
			}
		}
	}
	return false
}

// detectSerial probes candidate serial ports per platform.
func (m *Manager) detectSerial() ([]*Device, error) {
	var devices []*Device
	var ports []string

	switch runtime.GOOS {
	case "darwin":
		skipPatterns := []string{"Bluetooth", "Modem", "SPP", "DialIn", "Callout", "KeySerial", "debug-console"}

		cuPorts, _ := filepath.Glob("/dev/cu.*")
		ttyPorts, _ := filepath.Glob("/dev/tty.*")
		for _, port := range append(cuPorts, ttyPorts...) {
			skip := false
			for _, pattern := range skipPatterns {
				if strings.Contains(port, pattern) {
					skip = true
					break
				}
			}
			if !skip {
				ports = append(ports, port)
			}
		}

	case "linux":
		usbPorts, _ := filepath.Glob("/dev/ttyUSB*")
		acmPorts, _ := filepath.Glob("/dev/ttyACM*")
		ports = append(ports, usbPorts...)
		ports = append(ports, acmPorts...)

	case "windows":
		for i := 1; i <= 32; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
	}

	for _, portPath := range ports {
		// Open briefly just to confirm the port exists and is free.
		port, err := serial.OpenPort(&serial.Config{Name: portPath, Baud: 9600})
		if err != nil {
			continue
		}
		port.Close()

		description := fmt.Sprintf("Serial: %s", filepath.Base(portPath))
		info := registry.DeviceInfo{
			Type:        "serial",
			Device:      portPath,
			Description: description,
		}
		id := m.registry.GetID(info)

		devices = append(devices, &Device{
			ID:          id,
			Type:        "serial",
			Port:        portPath,
			Description: description,
			Name:        m.registry.GetName(id),
		})
	}

	return devices, nil
}
