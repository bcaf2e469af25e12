// Package command routes text commands from the CLI and the API to the
// printer manager. Both surfaces share one grammar so a command that
// works in printctl also works over POST /command.
package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mizpos/print-engine/internal/device"
	"github.com/mizpos/print-engine/internal/escpos"
)

// Executor executes parsed commands against the device manager.
type Executor struct {
	manager      *device.Manager
	locks        *device.LockTable
	defaultPaper escpos.PaperWidth
	logger       *zap.Logger
}

// NewExecutor creates an executor. defaultPaper applies when a payload
// does not name its own paper width.
func NewExecutor(manager *device.Manager, locks *device.LockTable, defaultPaper escpos.PaperWidth, logger *zap.Logger) *Executor {
	return &Executor{
		manager:      manager,
		locks:        locks,
		defaultPaper: defaultPaper,
		logger:       logger,
	}
}

// Result is the outcome of one command.
type Result struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

func fail(format string, args ...interface{}) *Result {
	return &Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Execute parses and runs one command line.
func (e *Executor) Execute(cmdStr string) *Result {
	parts := parseCommand(cmdStr)
	if len(parts) == 0 {
		return fail("empty command")
	}

	name := parts[0]
	args := parts[1:]

	switch name {
	case "devices":
		return e.handleDevices(args)
	case "detect":
		return e.handleDetect(args)
	case "rename":
		return e.handleRename(args)
	case "add-network":
		return e.handleAddNetwork(args)
	case "print-receipt":
		return e.handlePrintReceipt(args)
	case "print-report":
		return e.handlePrintReport(args)
	case "print-test":
		return e.handlePrintTest(args)
	case "print-text":
		return e.handlePrintText(args)
	case "help":
		return e.handleHelp(args)
	default:
		return fail("unknown command: %s. Type 'help' for available commands", name)
	}
}

// parseCommand splits a command line into fields, honoring single and
// double quotes so device names with spaces survive.
func parseCommand(cmdStr string) []string {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		return nil
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := byte(0)

	for i := 0; i < len(cmdStr); i++ {
		c := cmdStr[i]

		switch {
		case c == '"' || c == '\'':
			if !inQuotes {
				inQuotes = true
				quoteChar = c
			} else if c == quoteChar {
				inQuotes = false
				quoteChar = 0
			} else {
				current.WriteByte(c)
			}
		case c == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// withPrinter opens a transport for one print session, holding the
// per-device lock so concurrent jobs never interleave on the wire.
func (e *Executor) withPrinter(deviceID string, paper escpos.PaperWidth, fn func(*escpos.Printer) error) error {
	dev := e.manager.Get(deviceID)
	if dev == nil {
		return fmt.Errorf("device not found: %s", deviceID)
	}

	e.locks.Lock(deviceID)
	defer e.locks.Unlock(deviceID)

	transport, err := device.Open(dev)
	if err != nil {
		return fmt.Errorf("failed to open device %s: %w", deviceID, err)
	}
	defer transport.Close()

	printer := escpos.NewPrinterWithPaper(transport, paper)
	if err := fn(printer); err != nil {
		return err
	}

	e.logger.Info("print session finished",
		zap.String("device_id", deviceID),
		zap.String("paper", paper.String()))
	return nil
}

// paperFor picks the session paper width: payload hint first, then the
// configured default.
func (e *Executor) paperFor(hint int) escpos.PaperWidth {
	if hint != 0 {
		return escpos.PaperWidthFromHint(hint)
	}
	return e.defaultPaper
}
