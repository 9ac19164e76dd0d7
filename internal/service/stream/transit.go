package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"StarChart/internal/domain/models"
	domrepo "StarChart/internal/domain/repository"
	"StarChart/internal/usecase"
	applogger "StarChart/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// TransitEvent is one pushed frame on the transits socket.
type TransitEvent struct {
	Type  string        `json:"type"` // snapshot on connect, transit on tick
	Date  string        `json:"date"`
	Chart *models.Chart `json:"chart"`
}

// wsClient serializes writes to one connection. The gorilla conn allows a
// single concurrent writer, so every data frame goes through cl.mu.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// TransitStream pushes the current day's chart to connected WebSocket
// clients on a fixed interval. Charts come through the cached service, so
// a tick costs one cache read for any number of clients.
type TransitStream struct {
	charts       *usecase.ChartService
	metrics      domrepo.Metrics
	log          *applogger.Logger
	pushInterval time.Duration
	pingInterval time.Duration

	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]*wsClient
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewTransitStream(charts *usecase.ChartService, metrics domrepo.Metrics, log *applogger.Logger, pushInterval, pingInterval time.Duration, writeBufferSize int) *TransitStream {
	if pushInterval <= 0 {
		pushInterval = time.Minute
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	if writeBufferSize <= 0 {
		writeBufferSize = 4096
	}
	return &TransitStream{
		charts:       charts,
		metrics:      metrics,
		log:          log,
		pushInterval: pushInterval,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: writeBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*wsClient),
		stopCh:  make(chan struct{}),
	}
}

// Serve upgrades an HTTP request and registers the client for pushes.
func (s *TransitStream) Serve(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.metrics.RecordError("ws_upgrade")
		return err
	}

	cl := &wsClient{conn: conn}

	// The connect snapshot goes out before the client is registered, so the
	// first data frame is always the snapshot and never interleaves with a
	// broadcast tick.
	if event, err := s.currentEvent(c.Request().Context(), "snapshot"); err == nil {
		_ = s.write(cl, event)
	}

	s.mu.Lock()
	s.clients[conn] = cl
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Info("transit client connected", applogger.Int("clients", n))

	// Reader drains control frames and detects close.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Run pushes the current chart to all clients until ctx is canceled.
func (s *TransitStream) Run(ctx context.Context) {
	push := time.NewTicker(s.pushInterval)
	ping := time.NewTicker(s.pingInterval)
	defer push.Stop()
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ping.C:
			s.broadcastControl(websocket.PingMessage)
		case <-push.C:
			event, err := s.currentEvent(ctx, "transit")
			if err != nil {
				s.metrics.RecordError("ws_push_compute")
				s.log.Warn("transit push skipped", applogger.Error(err))
				continue
			}
			s.broadcast(event)
		}
	}
}

// Stop disconnects all clients and halts pushes.
func (s *TransitStream) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.mu.Lock()
		for conn := range s.clients {
			_ = conn.Close()
		}
		s.clients = make(map[*websocket.Conn]struct{})
		s.mu.Unlock()
		s.wg.Wait()
	})
}

func (s *TransitStream) currentEvent(ctx context.Context, typ string) (*TransitEvent, error) {
	now := time.Now().UTC()
	chart, err := s.charts.GetChart(ctx, now, false, false)
	if err != nil {
		return nil, err
	}
	return &TransitEvent{Type: typ, Date: chart.Date, Chart: chart}, nil
}

func (s *TransitStream) write(cl *wsClient, event *TransitEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return cl.conn.WriteMessage(websocket.TextMessage, b)
}

func (s *TransitStream) broadcast(event *TransitEvent) {
	s.mu.Lock()
	cls := make([]*wsClient, 0, len(s.clients))
	for _, cl := range s.clients {
		cls = append(cls, cl)
	}
	s.mu.Unlock()

	for _, cl := range cls {
		if err := s.write(cl, event); err != nil {
			s.drop(cl.conn)
		}
	}
}

func (s *TransitStream) broadcastControl(messageType int) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	// WriteControl is safe to call concurrently with WriteMessage.
	for _, conn := range conns {
		if err := conn.WriteControl(messageType, nil, time.Now().Add(2*time.Second)); err != nil {
			s.drop(conn)
		}
	}
}

func (s *TransitStream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		_ = conn.Close()
	}
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Debug("transit client dropped", applogger.Int("clients", n))
}
