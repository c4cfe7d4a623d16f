package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"parking_system_go/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewWebSocketManager(logger *zap.Logger) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
		logger:     logger,
	}
}

func (wsm *WebSocketManager) Start() {
	for {
		select {
		case client := <-wsm.register:
			wsm.mutex.Lock()
			wsm.clients[client] = true
			total := len(wsm.clients)
			wsm.mutex.Unlock()
			wsm.logger.Info("websocket client connected", zap.Int("total", total))

		case client := <-wsm.unregister:
			wsm.mutex.Lock()
			if _, ok := wsm.clients[client]; ok {
				delete(wsm.clients, client)
				client.Close()
			}
			total := len(wsm.clients)
			wsm.mutex.Unlock()
			wsm.logger.Info("websocket client disconnected", zap.Int("total", total))

		case message := <-wsm.broadcast:
			wsm.mutex.Lock()
			for client := range wsm.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					wsm.logger.Warn("websocket write failed, dropping client", zap.Error(err))
					client.Close()
					delete(wsm.clients, client)
				}
			}
			wsm.mutex.Unlock()
		}
	}
}

// LotUpdateNotification is the message pushed to dashboard clients whenever
// the lot changes.
type LotUpdateNotification struct {
	Type   string            `json:"type"`
	Status service.LotStatus `json:"status"`
}

func (wsm *WebSocketManager) BroadcastLotUpdate(status service.LotStatus) {
	message, err := json.Marshal(LotUpdateNotification{Type: "lot_update", Status: status})
	if err != nil {
		wsm.logger.Error("marshaling lot update", zap.Error(err))
		return
	}

	select {
	case wsm.broadcast <- message:
	default:
		// A stale frame is fine; the next change will carry fresh state.
		wsm.logger.Debug("broadcast channel full, dropping lot update")
	}
}

// LotBroadcaster bridges lot change notifications onto the websocket fanout.
type LotBroadcaster struct {
	parking   *service.ParkingService
	wsManager *WebSocketManager
}

func NewLotBroadcaster(parking *service.ParkingService, wsManager *WebSocketManager) *LotBroadcaster {
	return &LotBroadcaster{parking: parking, wsManager: wsManager}
}

var _ service.LotObserver = (*LotBroadcaster)(nil)

func (b *LotBroadcaster) OnLotChanged() {
	b.wsManager.BroadcastLotUpdate(b.parking.Status())
}

type WebSocketHandler struct {
	wsManager *WebSocketManager
	logger    *zap.Logger
}

func NewWebSocketHandler(wsManager *WebSocketManager, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager, logger: logger}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.wsManager.register <- conn

	go func() {
		defer func() {
			h.wsManager.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Warn("websocket read error", zap.Error(err))
				}
				break
			}
		}
	}()
}
