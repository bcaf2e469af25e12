package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mizpos/print-engine/internal/device"
	"github.com/mizpos/print-engine/pkg/receiptdata"
)

// WebSocket event names.
const (
	EventPrintReceipt  = "print_receipt"
	EventPrintReport   = "print_report"
	EventDeviceAdded   = "device_added"
	EventDeviceRemoved = "device_removed"
	EventResponse      = "response"
	EventError         = "error"
)

// WSMessage is one WebSocket frame in either direction.
type WSMessage struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan WSMessage
	server *Server
}

// wsHub tracks connected clients for broadcasts.
type wsHub struct {
	clients map[*wsClient]struct{}
	mu      sync.RWMutex
	logger  *zap.Logger
}

func newWSHub(logger *zap.Logger) *wsHub {
	return &wsHub{
		clients: make(map[*wsClient]struct{}),
		logger:  logger,
	}
}

func (h *wsHub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// remove drops the client and closes its send channel under the hub
// lock so a concurrent broadcast cannot send on a closed channel.
func (h *wsHub) remove(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// broadcast sends to every client, dropping frames for clients whose
// send buffer is full rather than blocking the caller.
func (h *wsHub) broadcast(msg WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
		}
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan WSMessage, 256),
		server: s,
	}

	s.logger.Info("WebSocket client connected", zap.String("remote", conn.RemoteAddr().String()))

	go client.writePump()
	go client.readPump()
}

func (c *wsClient) readPump() {
	defer func() {
		c.server.hub.remove(c)
		c.conn.Close()
		c.server.logger.Info("WebSocket client disconnected")
	}()

	c.server.hub.add(c)

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *wsClient) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.server.logger.Warn("WebSocket write error", zap.Error(err))
			return
		}
	}
}

func (c *wsClient) handleMessage(msg *WSMessage) {
	switch msg.Event {
	case EventPrintReceipt:
		c.handlePrintReceipt(msg.Data)
	case EventPrintReport:
		c.handlePrintReport(msg.Data)
	default:
		c.sendError(fmt.Sprintf("unknown event: %s", msg.Event))
	}
}

func (c *wsClient) handlePrintReceipt(data map[string]interface{}) {
	deviceID, ok := data["device_id"].(string)
	if !ok || deviceID == "" {
		c.sendError("device_id is required")
		return
	}

	raw, ok := data["receipt"]
	if !ok {
		c.sendError("receipt is required")
		return
	}

	// The payload arrives as generic JSON; round-trip through the
	// parser so validation matches the HTTP path.
	encoded, err := json.Marshal(raw)
	if err != nil {
		c.sendError(fmt.Sprintf("invalid receipt: %v", err))
		return
	}
	receipt, err := receiptdata.ParseReceipt(encoded)
	if err != nil {
		c.sendError(fmt.Sprintf("invalid receipt: %v", err))
		return
	}

	if err := c.server.executor.PrintReceipt(deviceID, receipt); err != nil {
		c.sendError(fmt.Sprintf("print failed: %v", err))
		return
	}

	c.sendResponse(map[string]interface{}{
		"success":    true,
		"receipt_no": receipt.ReceiptNo,
	})
}

func (c *wsClient) handlePrintReport(data map[string]interface{}) {
	deviceID, ok := data["device_id"].(string)
	if !ok || deviceID == "" {
		c.sendError("device_id is required")
		return
	}

	raw, ok := data["report"]
	if !ok {
		c.sendError("report is required")
		return
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		c.sendError(fmt.Sprintf("invalid report: %v", err))
		return
	}
	report, err := receiptdata.ParseReport(encoded)
	if err != nil {
		c.sendError(fmt.Sprintf("invalid report: %v", err))
		return
	}

	if err := c.server.executor.PrintReport(deviceID, report); err != nil {
		c.sendError(fmt.Sprintf("print failed: %v", err))
		return
	}

	c.sendResponse(map[string]interface{}{"success": true})
}

func (c *wsClient) sendResponse(data map[string]interface{}) {
	c.send <- WSMessage{Event: EventResponse, Data: data}
}

func (c *wsClient) sendError(message string) {
	c.send <- WSMessage{Event: EventError, Data: map[string]interface{}{"error": message}}
}

// BroadcastDeviceAdded notifies every client about a new device.
func (s *Server) BroadcastDeviceAdded(d *device.Device) {
	s.hub.broadcast(WSMessage{
		Event: EventDeviceAdded,
		Data: map[string]interface{}{
			"id":          d.ID,
			"type":        d.Type,
			"description": d.Description,
			"name":        d.Name,
		},
	})
	s.logger.Info("device added", zap.String("id", d.ID), zap.String("description", d.Description))
}

// BroadcastDeviceRemoved notifies every client about a lost device.
func (s *Server) BroadcastDeviceRemoved(deviceID string) {
	s.hub.broadcast(WSMessage{
		Event: EventDeviceRemoved,
		Data:  map[string]interface{}{"id": deviceID},
	})
	s.logger.Info("device removed", zap.String("id", deviceID))
}
