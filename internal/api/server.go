// Package api exposes the print daemon over HTTP and WebSocket.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mizpos/print-engine/internal/command"
	"github.com/mizpos/print-engine/internal/device"
	"github.com/mizpos/print-engine/pkg/receiptdata"
)

// Server is the HTTP/WebSocket front end.
type Server struct {
	router   *gin.Engine
	manager  *device.Manager
	executor *command.Executor
	logger   *zap.Logger
	upgrader websocket.Upgrader
	hub      *wsHub
}

// NewServer builds the router. Callers wire manager callbacks to the
// broadcast methods before starting discovery.
func NewServer(manager *device.Manager, executor *command.Executor, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		router:   router,
		manager:  manager,
		executor: executor,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// Local POS terminals talk to the daemon from file:// and
			// app origins, so origin checks stay open.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		hub: newWSHub(logger),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/devices", s.handleGetDevices)
	s.router.POST("/devices/detect", s.handleDetect)
	s.router.POST("/device/:id/name", s.handleSetName)
	s.router.POST("/device/network", s.handleAddNetwork)

	s.router.POST("/print/receipt", s.handlePrintReceipt)
	s.router.POST("/print/report", s.handlePrintReport)
	s.router.POST("/print/test", s.handlePrintTest)
	s.router.POST("/print/text", s.handlePrintText)

	s.router.POST("/command", s.handleCommand)
	s.router.GET("/ws", s.handleWebSocket)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) handleGetDevices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"devices": s.manager.All()})
}

func (s *Server) handleDetect(c *gin.Context) {
	devices, err := s.manager.Detect()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (s *Server) handleSetName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if !s.manager.SetName(c.Param("id"), req.Name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAddNetwork(c *gin.Context) {
	var req struct {
		Host        string `json:"host" binding:"required"`
		Port        int    `json:"port"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "host is required"})
		return
	}

	id := s.manager.AddNetwork(req.Host, req.Port, req.Description)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"device_id": id,
		"device":    s.manager.Get(id),
	})
}

func (s *Server) handlePrintReceipt(c *gin.Context) {
	var req struct {
		DeviceID string               `json:"device_id" binding:"required"`
		Receipt  *receiptdata.Receipt `json:"receipt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Receipt.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.executor.PrintReceipt(req.DeviceID, req.Receipt); err != nil {
		s.logger.Error("receipt print failed",
			zap.String("device_id", req.DeviceID),
			zap.String("receipt_no", req.Receipt.ReceiptNo),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt_no": req.Receipt.ReceiptNo})
}

func (s *Server) handlePrintReport(c *gin.Context) {
	var req struct {
		DeviceID string              `json:"device_id" binding:"required"`
		Report   *receiptdata.Report `json:"report" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Report.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.executor.PrintReport(req.DeviceID, req.Report); err != nil {
		s.logger.Error("report print failed",
			zap.String("device_id", req.DeviceID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handlePrintTest(c *gin.Context) {
	var req struct {
		DeviceID   string `json:"device_id" binding:"required"`
		TerminalID string `json:"terminal_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	if err := s.executor.PrintTest(req.DeviceID, req.TerminalID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handlePrintText(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id" binding:"required"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id and text are required"})
		return
	}

	if err := s.executor.PrintText(req.DeviceID, req.Text); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleCommand(c *gin.Context) {
	var req struct {
		Command string `json:"command" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}

	result := s.executor.Execute(req.Command)
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": result.Error})
		return
	}

	response := gin.H{"success": true}
	if result.Message != "" {
		response["message"] = result.Message
	}
	for k, v := range result.Data {
		response[k] = v
	}
	c.JSON(http.StatusOK, response)
}

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("API server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
