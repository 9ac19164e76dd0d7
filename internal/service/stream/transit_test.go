package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"StarChart/internal/astro"
	"StarChart/internal/usecase"
	applogger "StarChart/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type nopMetrics struct{}

func (nopMetrics) RecordChartComputed(string)    {}
func (nopMetrics) RecordCacheLookup(string)      {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordBodyFailure(string)      {}
func (nopMetrics) RecordSnapshot(string, string) {}
func (nopMetrics) RecordLatency(string, float64) {}

func testStream(t *testing.T, pushInterval time.Duration) *TransitStream {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	src := &astro.FixedSource{Longitudes: map[astro.Body]float64{
		astro.Sun: 10, astro.Moon: 100, astro.Mercury: 15, astro.Venus: 40, astro.Mars: 205,
		astro.Jupiter: 130, astro.Saturn: 310, astro.Uranus: 55, astro.Neptune: 355, astro.Pluto: 295,
	}}
	charts := usecase.NewChartService(astro.NewEngine(src, astro.DefaultParams()), nil, nopMetrics{}, log, time.Hour)
	return NewTransitStream(charts, nopMetrics{}, log, pushInterval, time.Second, 0)
}

func dialTransit(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/transits"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestTransitStreamSnapshotOnConnect(t *testing.T) {
	s := testStream(t, time.Hour)
	e := echo.New()
	e.GET("/api/transits", s.Serve)
	srv := httptest.NewServer(e)
	defer srv.Close()
	defer s.Stop()

	conn := dialTransit(t, srv)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev TransitEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if ev.Type != "snapshot" {
		t.Fatalf("first frame type %q, want snapshot", ev.Type)
	}
	if ev.Chart == nil || len(ev.Chart.Planets) != 10 {
		t.Fatalf("snapshot carries no chart: %+v", ev)
	}
}

// Connect snapshots and broadcast ticks write to the same connections from
// different goroutines; frames must stay intact under the race detector.
func TestTransitStreamConcurrentConnectAndPush(t *testing.T) {
	s := testStream(t, time.Millisecond)
	e := echo.New()
	e.GET("/api/transits", s.Serve)
	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(
				"ws"+strings.TrimPrefix(srv.URL, "http")+"/api/transits", nil)
			if err != nil {
				t.Errorf("dial: %v", err)
				return
			}
			defer conn.Close()
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

			for j := 0; j < 3; j++ {
				var ev TransitEvent
				if err := conn.ReadJSON(&ev); err != nil {
					t.Errorf("frame %d: %v", j, err)
					return
				}
				if j == 0 && ev.Type != "snapshot" {
					t.Errorf("first frame type %q, want snapshot", ev.Type)
				}
				if j > 0 && ev.Type != "transit" {
					t.Errorf("frame %d type %q, want transit", j, ev.Type)
				}
				if ev.Chart == nil {
					t.Errorf("frame %d has no chart", j)
				}
			}
		}()
	}
	wg.Wait()
}

func TestTransitStreamStopDisconnectsClients(t *testing.T) {
	s := testStream(t, time.Hour)
	e := echo.New()
	e.GET("/api/transits", s.Serve)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialTransit(t, srv)
	defer conn.Close()

	var ev TransitEvent
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	s.Stop()

	if err := conn.ReadJSON(&ev); err == nil {
		t.Fatal("connection still open after Stop")
	}
}
