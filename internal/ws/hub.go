package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
	"github.com/coreman2200/funtimes-santatrack/internal/oracle"
	"github.com/coreman2200/funtimes-santatrack/internal/render"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
)

const writeWait = 200 * time.Millisecond

// Controller is what /control messages act on.
type Controller interface {
	SetScroll(y float64)
	SetViewport(h float64)
	ToggleMusic() bool
	ToggleHistory() bool
	AskElf(ctx context.Context) (oracle.Reply, bool)
	StartTour(loop bool) error
	StopTour()
}

// client serialises writes; gorilla allows one writer per connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(b)
}

// caller holds mu
func (c *client) write(b []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub fans frames and diagnostics out to websocket clients and routes
// control messages to the Controller. It is a render.Driver and a diag.Sink.
type Hub struct {
	mu   sync.RWMutex
	Ctrl Controller
	Ship *tracking.Shipment
	FPS  int
	// Uptime reports seconds of service; nil counts from NewHub.
	Uptime func() float64

	lastFrame   []byte
	frameID     uint64
	startTime   time.Time
	clients     map[*client]bool
	diagClients map[*client]bool

	up websocket.Upgrader
}

func NewHub(ctrl Controller, ship *tracking.Shipment, fps int) *Hub {
	return &Hub{
		Ctrl:        ctrl,
		Ship:        ship,
		FPS:         fps,
		startTime:   time.Now(),
		clients:     map[*client]bool{},
		diagClients: map[*client]bool{},
		up:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Routes registers every endpoint on mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/control", h.HandleControlWS)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/api/timeline", h.HandleTimeline)
}

// Write broadcasts a frame to every /ws client.
func (h *Hub) Write(fr render.Frame) error {
	b, err := json.Marshal(fr)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.lastFrame = b
	h.frameID = fr.FrameID
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if err := c.send(b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

// Push broadcasts a diagnostic to every /diag client.
func (h *Hub) Push(d diag.Diagnostic) {
	if d.At.IsZero() {
		d.At = time.Now()
	}
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.diagClients {
		_ = c.send(b)
	}
}

// Clients reports connected frame and diagnostic clients.
func (h *Hub) Clients() (frames, diags int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients), len(h.diagClients)
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	// the cached frame goes out before any broadcast can reach c
	c.mu.Lock()
	h.mu.Lock()
	h.clients[c] = true
	last := h.lastFrame
	h.mu.Unlock()
	if last != nil {
		_ = c.write(last)
	}
	c.mu.Unlock()
	go h.drain(c, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	h.mu.Lock()
	h.diagClients[c] = true
	h.mu.Unlock()
	go h.drain(c, h.diagClients)
}

// drain reads until the peer goes away, then unregisters it.
func (h *Hub) drain(c *client, set map[*client]bool) {
	defer func() {
		h.mu.Lock()
		delete(set, c)
		h.mu.Unlock()
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	c := &client{conn: conn}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendAck(c, Ack{Error: "bad json"})
			continue
		}
		h.applyControl(ctx, c, msg)
	}
}

// Ack answers a control message.
type Ack struct {
	OK            bool          `json:"ok"`
	Error         string        `json:"error,omitempty"`
	MusicPlaying  *bool         `json:"musicPlaying,omitempty"`
	ShowHistory   *bool         `json:"showHistory,omitempty"`
	Busy          bool          `json:"busy,omitempty"`
	Reply         *oracle.Reply `json:"reply,omitempty"`
	TourRunning   *bool         `json:"tourRunning,omitempty"`
	UnknownFields []string      `json:"unknown,omitempty"`
}

func (h *Hub) applyControl(ctx context.Context, c *client, msg map[string]any) {
	ack := Ack{OK: true}
	if h.Ctrl == nil {
		h.sendAck(c, Ack{Error: "no controller"})
		return
	}
	for k, v := range msg {
		switch k {
		case "scrollY":
			if y, ok := v.(float64); ok {
				h.Ctrl.SetScroll(y)
			}
		case "viewportH":
			if vh, ok := v.(float64); ok {
				h.Ctrl.SetViewport(vh)
			}
		case "toggleMusic":
			if b, ok := v.(bool); ok && b {
				p := h.Ctrl.ToggleMusic()
				ack.MusicPlaying = &p
			}
		case "toggleHistory":
			if b, ok := v.(bool); ok && b {
				s := h.Ctrl.ToggleHistory()
				ack.ShowHistory = &s
			}
		case "tour":
			s, _ := v.(string)
			running := false
			switch s {
			case "start", "loop":
				if err := h.Ctrl.StartTour(s == "loop"); err != nil {
					ack.OK, ack.Error = false, err.Error()
				} else {
					running = true
				}
			default:
				h.Ctrl.StopTour()
			}
			ack.TourRunning = &running
		case "askElf":
			// answered separately so scrolling keeps flowing meanwhile
			if b, ok := v.(bool); ok && b {
				go h.askElf(ctx, c)
			}
		default:
			ack.UnknownFields = append(ack.UnknownFields, k)
		}
	}
	if len(ack.UnknownFields) > 0 {
		h.Push(diag.Diagnostic{
			Severity: diag.Warn, Code: diag.ControlUnknown, Summary: "Unknown control fields",
			Evidence: map[string]any{"fields": ack.UnknownFields},
		})
	}
	h.sendAck(c, ack)
}

func (h *Hub) askElf(ctx context.Context, c *client) {
	r, ok := h.Ctrl.AskElf(ctx)
	if !ok {
		h.sendAck(c, Ack{OK: true, Busy: true})
		return
	}
	h.sendAck(c, Ack{OK: true, Reply: &r})
}

func (h *Hub) sendAck(c *client, a Ack) {
	b, _ := json.Marshal(a)
	if err := c.send(b); err != nil {
		log.Debug().Err(err).Msg("write ack")
	}
}

func (h *Hub) uptime() float64 {
	if h.Uptime != nil {
		return h.Uptime()
	}
	return time.Since(h.startTime).Seconds()
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	if h.Ship != nil {
		count = len(h.Ship.Events)
	}
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": h.uptime(),
		"count":    count,
		"fps":      h.FPS,
		"clients":  len(h.clients),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleTimeline serves the shipment with its latest reached event.
func (h *Hub) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	if h.Ship == nil {
		http.Error(w, "no tracking data", http.StatusNotFound)
		return
	}
	resp := struct {
		*tracking.Shipment
		Latest *tracking.Event `json:"latest,omitempty"`
	}{Shipment: h.Ship}
	if ev, ok := h.Ship.Latest(); ok {
		resp.Latest = &ev
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
