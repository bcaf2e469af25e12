// Package registry assigns stable IDs to printers so that clients can
// address a device by the same ID across daemon restarts and rescans.
package registry

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Registry maps printer identity keys to persistent IDs and names.
// The table is stored as a JSON file.
type Registry struct {
	path    string
	entries map[string]*Entry
	mu      sync.RWMutex
}

// Entry is one registered printer.
type Entry struct {
	ID          string `json:"id"`
	IdentityKey string `json:"identity_key"`
	Type        string `json:"type"` // usb, serial, network
	VID         uint16 `json:"vid,omitempty"`
	PID         uint16 `json:"pid,omitempty"`
	Device      string `json:"device,omitempty"`
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
	Description string `json:"description"`
	Name        string `json:"name,omitempty"`
}

// DeviceInfo identifies a detected printer before it has an ID.
type DeviceInfo struct {
	Type        string
	Description string
	Device      string
	VID         uint16
	PID         uint16
	Host        string
	Port        int
}

// New loads the registry at path, creating an empty one if the file
// does not exist yet.
func New(path string) (*Registry, error) {
	r := &Registry{
		path:    path,
		entries: make(map[string]*Entry),
	}

	if err := r.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load registry: %w", err)
		}
	}

	return r, nil
}

// GetID returns the persistent ID for a printer, minting and saving a
// new one the first time the printer is seen.
func (r *Registry) GetID(info DeviceInfo) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identityKey(info)
	if entry, ok := r.entries[key]; ok {
		return entry.ID
	}

	entry := &Entry{
		ID:          uuid.New().String(),
		IdentityKey: key,
		Type:        info.Type,
		VID:         info.VID,
		PID:         info.PID,
		Device:      info.Device,
		Host:        info.Host,
		Port:        info.Port,
		Description: info.Description,
	}
	r.entries[key] = entry

	// A failed save is not fatal; the ID just won't survive a restart.
	_ = r.save()

	return entry.ID
}

// GetName returns the custom name for a printer, or "".
func (r *Registry) GetName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry := r.byID(id); entry != nil {
		return entry.Name
	}
	return ""
}

// SetName stores a custom name. Returns false for an unknown ID.
func (r *Registry) SetName(id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.byID(id)
	if entry == nil {
		return false
	}
	entry.Name = name
	_ = r.save()
	return true
}

// Lookup returns a copy of the entry for an ID, or nil.
func (r *Registry) Lookup(id string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry := r.byID(id); entry != nil {
		cp := *entry
		return &cp
	}
	return nil
}

// Remove deletes a printer from the registry.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if entry.ID == id {
			delete(r.entries, key)
			_ = r.save()
			return true
		}
	}
	return false
}

// All returns a copy of every entry.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		cp := *entry
		result = append(result, &cp)
	}
	return result
}

// byID is a linear scan; registries hold a handful of printers.
// Callers hold r.mu.
func (r *Registry) byID(id string) *Entry {
	for _, entry := range r.entries {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &r.entries)
}

// save writes through a temp file so a crash mid-write cannot corrupt
// the registry.
func (r *Registry) save() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// identityKey builds a stable key from whatever identifies the printer
// on its bus. USB printers keep their ID across port changes; serial
// printers are keyed by device path.
func identityKey(info DeviceInfo) string {
	switch info.Type {
	case "usb":
		if info.VID != 0 && info.PID != 0 {
			return fmt.Sprintf("usb:%04X:%04X", info.VID, info.PID)
		}
	case "serial":
		if info.Device != "" {
			return fmt.Sprintf("serial:%s", info.Device)
		}
	case "network":
		if info.Host != "" {
			return fmt.Sprintf("network:%s:%d", info.Host, info.Port)
		}
	}

	sum := sha1.Sum([]byte(info.Description))
	return fmt.Sprintf("hash:%x", sum)
}
