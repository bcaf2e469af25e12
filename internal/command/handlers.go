package command

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mizpos/print-engine/pkg/receiptdata"
)

// handleDevices lists every known device.
// Usage: devices
func (e *Executor) handleDevices(args []string) *Result {
	devices := e.manager.All()

	list := make([]map[string]interface{}, len(devices))
	for i, d := range devices {
		entry := map[string]interface{}{
			"id":          d.ID,
			"type":        d.Type,
			"description": d.Description,
			"name":        d.Name,
		}
		if d.Type == "network" {
			entry["host"] = d.Host
			entry["port"] = d.TCPPort
		}
		list[i] = entry
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Found %d device(s)", len(devices)),
		Data:    map[string]interface{}{"devices": list},
	}
}

// handleDetect rescans the buses.
// Usage: detect
func (e *Executor) handleDetect(args []string) *Result {
	devices, err := e.manager.Detect()
	if err != nil {
		return fail("detection failed: %v", err)
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("Detected %d device(s)", len(devices)),
		Data:    map[string]interface{}{"count": len(devices)},
	}
}

// handleRename sets a custom device name.
// Usage: rename <device-id> <name>
func (e *Executor) handleRename(args []string) *Result {
	if len(args) < 2 {
		return fail("usage: rename <device-id> <name>")
	}

	deviceID := args[0]
	name := args[1]
	if !e.manager.SetName(deviceID, name) {
		return fail("device not found: %s", deviceID)
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("Renamed device %s to %s", deviceID, name),
	}
}

// handleAddNetwork registers a network printer.
// Usage: add-network <host> [port]
func (e *Executor) handleAddNetwork(args []string) *Result {
	if len(args) < 1 {
		return fail("usage: add-network <host> [port]")
	}

	host := args[0]
	port := 0
	if len(args) >= 2 {
		var err error
		port, err = strconv.Atoi(args[1])
		if err != nil {
			return fail("invalid port: %s", args[1])
		}
	}

	id := e.manager.AddNetwork(host, port, "")
	return &Result{
		Success: true,
		Message: fmt.Sprintf("Added network device %s", id),
		Data:    map[string]interface{}{"device_id": id},
	}
}

// handlePrintReceipt prints a receipt JSON document.
// Usage: print-receipt <device-id> <path-or-url>
func (e *Executor) handlePrintReceipt(args []string) *Result {
	if len(args) < 2 {
		return fail("usage: print-receipt <device-id> <path-or-url>")
	}

	data, err := loadDocument(args[1])
	if err != nil {
		return fail("failed to load receipt: %v", err)
	}
	receipt, err := receiptdata.ParseReceipt(data)
	if err != nil {
		return fail("invalid receipt: %v", err)
	}

	if err := e.PrintReceipt(args[0], receipt); err != nil {
		return fail("print failed: %v", err)
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Printed receipt %s", receipt.ReceiptNo),
		Data:    map[string]interface{}{"receipt_no": receipt.ReceiptNo},
	}
}

// handlePrintReport prints a settlement report JSON document.
// Usage: print-report <device-id> <path-or-url>
func (e *Executor) handlePrintReport(args []string) *Result {
	if len(args) < 2 {
		return fail("usage: print-report <device-id> <path-or-url>")
	}

	data, err := loadDocument(args[1])
	if err != nil {
		return fail("failed to load report: %v", err)
	}
	report, err := receiptdata.ParseReport(data)
	if err != nil {
		return fail("invalid report: %v", err)
	}

	if err := e.PrintReport(args[0], report); err != nil {
		return fail("print failed: %v", err)
	}

	return &Result{
		Success: true,
		Message: "Printed report",
	}
}

// handlePrintTest prints the connectivity test page.
// Usage: print-test <device-id> [terminal-id]
func (e *Executor) handlePrintTest(args []string) *Result {
	if len(args) < 1 {
		return fail("usage: print-test <device-id> [terminal-id]")
	}

	terminalID := ""
	if len(args) >= 2 {
		terminalID = args[1]
	}

	if err := e.PrintTest(args[0], terminalID); err != nil {
		return fail("print failed: %v", err)
	}

	return &Result{Success: true, Message: "Printed test page"}
}

// handlePrintText prints raw lines of text and cuts.
// Usage: print-text <device-id> <text...>
func (e *Executor) handlePrintText(args []string) *Result {
	if len(args) < 2 {
		return fail("usage: print-text <device-id> <text...>")
	}

	text := strings.Join(args[1:], " ")
	if err := e.PrintText(args[0], text); err != nil {
		return fail("print failed: %v", err)
	}

	return &Result{Success: true, Message: "Printed text"}
}

// handleHelp prints the command reference.
func (e *Executor) handleHelp(args []string) *Result {
	helpText := `Available Commands:

  devices
    List all known devices

  detect
    Rescan USB and serial buses for printers

  rename <device-id> <name>
    Set a custom name for a device

  add-network <host> [port]
    Register a network printer (default port: 9100)

  print-receipt <device-id> <path-or-url>
    Print a receipt JSON document

  print-report <device-id> <path-or-url>
    Print a settlement report JSON document

  print-test <device-id> [terminal-id]
    Print the connectivity test page

  print-text <device-id> <text...>
    Print plain text and cut

  help
    Show this help message

Examples:
  print-receipt 7f3a... ./receipt.json
  print-receipt 7f3a... https://pos.example.jp/receipts/1205.json
  add-network 192.168.1.100 9100
  rename 7f3a... "レジ1"
`

	return &Result{Success: true, Message: helpText}
}

// loadDocument reads a JSON document from a local path or an HTTP URL.
func loadDocument(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch %s: HTTP %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, nil
}
