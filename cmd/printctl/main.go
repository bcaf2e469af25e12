package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const defaultServerURL = "http://localhost:8723"

func main() {
	var serverURL string
	pflag.StringVarP(&serverURL, "server", "s", defaultServerURL, "printd server URL")
	pflag.Usage = printUsage
	pflag.Parse()

	if pflag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	command := strings.Join(quoteArgs(pflag.Args()), " ")
	result := executeCommand(serverURL, command)

	if result.Success {
		printSuccess(result)
		return
	}
	printError(result)
	os.Exit(1)
}

// quoteArgs re-quotes arguments containing spaces so the daemon's
// command parser sees them as single fields again.
func quoteArgs(args []string) []string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.Contains(arg, " ") {
			quoted[i] = `"` + arg + `"`
		} else {
			quoted[i] = arg
		}
	}
	return quoted
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `printctl - control a running printd daemon

Usage:
  printctl [flags] <command>

Flags:
  -s, --server <url>    printd server URL (default: %s)

Commands:
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
    Show the daemon's command reference

Examples:
  printctl devices
  printctl print-receipt 7f3a... ./receipt.json
  printctl rename 7f3a... "レジ1"
  printctl -s http://localhost:9000 detect

`, defaultServerURL)
}

type commandResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Devices []map[string]interface{} `json:"devices,omitempty"`
	Data    map[string]interface{} `json:"-"`
}

func executeCommand(serverURL, command string) *commandResult {
	url := strings.TrimSuffix(serverURL, "/") + "/command"

	body, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to connect to printd: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to read response: %v", err)}
	}

	var result commandResult
	if err := json.Unmarshal(data, &result); err != nil {
		return &commandResult{Success: false, Error: fmt.Sprintf("failed to parse response: %v", err)}
	}

	// Keep the raw payload for fields the typed struct doesn't cover.
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err == nil {
		result.Data = raw
	}

	return &result
}

func printSuccess(result *commandResult) {
	if result.Message != "" {
		fmt.Println(result.Message)
	}

	if len(result.Devices) > 0 {
		fmt.Println()
		for _, d := range result.Devices {
			name, _ := d["name"].(string)
			if name == "" {
				name, _ = d["description"].(string)
			}
			fmt.Printf("  %v  %v (%v)\n", d["id"], name, d["type"])
		}
	}

	if id, ok := result.Data["device_id"].(string); ok && id != "" {
		fmt.Printf("Device ID: %s\n", id)
	}
}

func printError(result *commandResult) {
	if result.Error != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.Error)
	} else if result.Message != "" {
		fmt.Fprintln(os.Stderr, result.Message)
	} else {
		fmt.Fprintln(os.Stderr, "Error: command failed")
	}
}
