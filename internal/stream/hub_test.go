package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/energy-oracle/eo-api/internal/domain/models"
)

// addClient wires a client into the hub registry without a socket so the
// queueing behavior is observable directly.
func addClient(h *Hub, buffer int) *Client {
	c := &Client{hub: h, send: make(chan []byte, buffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func TestBroadcastDeliversToAllClients(t *testing.T) {
	h := NewHub()
	a := addClient(h, 4)
	b := addClient(h, 4)

	tick := &models.PriceTick{PriceType: models.PriceTypeSystem, SettlementDate: "2025-03-03", SettlementPeriod: 12, Price: 85.5}
	h.Broadcast(tick)

	for _, c := range []*Client{a, b} {
		select {
		case payload := <-c.send:
			var got models.PriceTick
			if err := json.Unmarshal(payload, &got); err != nil {
				t.Fatalf("payload not a tick: %v", err)
			}
			if got.SettlementPeriod != 12 || got.Price != 85.5 {
				t.Fatalf("unexpected tick %+v", got)
			}
		default:
			t.Fatalf("client did not receive the tick")
		}
	}
}

func TestBroadcastDropsSlowConsumer(t *testing.T) {
	h := NewHub()
	slow := addClient(h, 1)
	fast := addClient(h, 8)

	tick := &models.PriceTick{PriceType: models.PriceTypeSystem, SettlementDate: "2025-03-03", SettlementPeriod: 1, Price: 10}
	h.Broadcast(tick) // fills slow's queue
	h.Broadcast(tick) // slow's queue is full now; it must be dropped

	if h.Clients() != 1 {
		t.Fatalf("slow consumer should be dropped, have %d clients", h.Clients())
	}
	if len(fast.send) != 2 {
		t.Fatalf("fast consumer should hold both ticks, has %d", len(fast.send))
	}
	// drain the buffered tick; the queue must then be closed
	<-slow.send
	if _, ok := <-slow.send; ok {
		t.Fatalf("dropped client's queue should be closed")
	}
}

// Fan-out must survive queue closes racing it: a peer disconnect (or the
// drop-slow-consumer path itself) closing a send queue while another
// goroutine broadcasts must never panic the broadcasting goroutine.
func TestBroadcastConcurrentWithDisconnects(t *testing.T) {
	h := NewHub()
	clients := make([]*Client, 0, 32)
	for i := 0; i < 32; i++ {
		clients = append(clients, addClient(h, 1))
	}

	tick := &models.PriceTick{PriceType: models.PriceTypeSystem, SettlementDate: "2025-03-03", SettlementPeriod: 1, Price: 10}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h.Broadcast(tick)
			}
		}()
	}
	for _, c := range clients[:16] {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			h.unregister(c) // peer disconnect racing the fan-out
		}(c)
	}
	wg.Wait()

	// every buffer-1 client is either reaped above or dropped as slow
	if n := h.Clients(); n != 0 {
		t.Fatalf("expected empty hub after the churn, have %d clients", n)
	}
}

// A disconnected peer must see a normal-closure frame: the hub closes the
// queue only, and writePump sends the close frame before closing the socket.
func TestUnregisterSendsCloseFrame(t *testing.T) {
	h := NewHub(WithPingInterval(time.Minute))

	var mu sync.Mutex
	var registered *Client
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		c := h.Register(conn)
		mu.Lock()
		registered = c
		mu.Unlock()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		c := registered
		mu.Unlock()
		if c != nil {
			h.unregister(c)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("expected normal closure, got %v", err)
			}
			return
		}
	}
}

func TestCloseDisconnectsEveryone(t *testing.T) {
	h := NewHub()
	addClient(h, 1)
	addClient(h, 1)

	h.Close()
	if h.Clients() != 0 {
		t.Fatalf("expected empty hub, have %d", h.Clients())
	}
}

type captureHub struct {
	ticks []*models.PriceTick
}

func (c *captureHub) Broadcast(t *models.PriceTick) { c.ticks = append(c.ticks, t) }
func (c *captureHub) Clients() int                  { return 0 }

func TestTickHandlerBroadcasts(t *testing.T) {
	hub := &captureHub{}
	h := NewTickHandler("uk.energy.ticks", hub, nil)
	if h.Topic() != "uk.energy.ticks" {
		t.Fatalf("unexpected topic %s", h.Topic())
	}

	payload, _ := json.Marshal(models.PriceTick{
		PriceType: models.PriceTypeDayAhead, SettlementDate: "2025-03-04", SettlementPeriod: 20, Price: 64.2,
	})
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(hub.ticks) != 1 || hub.ticks[0].Price != 64.2 {
		t.Fatalf("tick not broadcast: %+v", hub.ticks)
	}
}

func TestTickHandlerRejectsMalformed(t *testing.T) {
	hub := &captureHub{}
	h := NewTickHandler("uk.energy.ticks", hub, nil)

	if err := h.Handle(context.Background(), []byte("{not json")); err == nil {
		t.Fatalf("malformed payload must error for the retry/DLQ path")
	}
	if err := h.Handle(context.Background(), []byte(`{"price_type":"intraday"}`)); err == nil {
		t.Fatalf("unknown price type must error")
	}
	if len(hub.ticks) != 0 {
		t.Fatalf("nothing should have been broadcast")
	}
}
