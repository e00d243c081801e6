// Package network serves a websocket inspector streaming world events and metrics
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LordOfDragons/dragengine-sub060/service"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// ServiceName is the hub name of the network service
const ServiceName = "network"

// Service accepts inspectors and mirrors world events to them
type Service struct {
	config   *Config
	logger   *slog.Logger
	metrics  *status.Registry
	hub      *hub
	upgrader websocket.Upgrader
	seq      atomic.Uint64

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	worlds   []string
	wg       sync.WaitGroup

	connected *atomic.Int64
	rejected  *atomic.Int64
	events    *atomic.Int64
	clients   *status.Gauge
}

// NewService creates a network service with default config (listener disabled)
func NewService() *Service {
	return &Service{config: DefaultConfig()}
}

// Name implements service.Service
func (s *Service) Name() string { return ServiceName }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
// Understands *Config, *status.Registry and *slog.Logger arguments
func (s *Service) Init(args ...any) error {
	if cfg, ok := service.Arg[*Config](args); ok && cfg != nil {
		s.config = cfg
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.metrics, _ = service.Arg[*status.Registry](args)
	if s.metrics == nil {
		s.metrics = status.NewRegistry()
	}
	logger, _ := service.Arg[*slog.Logger](args)
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger.With("service", ServiceName)

	s.connected = s.metrics.Counter("network.connected")
	s.rejected = s.metrics.Counter("network.rejected")
	s.events = s.metrics.Counter("network.events")
	s.clients = s.metrics.Gauge("network.clients")
	s.hub = newHub(s.metrics.Counter("network.dropped"))
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
	return nil
}

// Start implements service.Service; it binds only when the config enables it
func (s *Service) Start() error {
	if s.hub == nil {
		return fmt.Errorf("start before init: %w", ErrNotRunning)
	}
	if !s.config.Enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	s.listener = ln
	s.server = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("inspector server stopped", "error", err)
		}
	}()
	s.logger.Info("inspector listening", "address", ln.Addr().String(), "path", s.config.Path)
	return nil
}

// Stop implements service.Service; it is idempotent
func (s *Service) Stop() error {
	if s.hub == nil {
		return nil
	}
	for _, c := range s.hub.takeAll() {
		c.goAway(s.config.WriteTimeout)
	}
	s.clients.Set(0)

	s.mu.Lock()
	server := s.server
	s.server, s.listener = nil, nil
	s.mu.Unlock()
	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	defer cancel()
	err := server.Shutdown(ctx)
	s.wg.Wait()
	return err
}

// Addr returns the bound listener address, empty while not listening
func (s *Service) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// ClientCount returns the connected inspector count
func (s *Service) ClientCount() int {
	if s.hub == nil {
		return 0
	}
	return s.hub.count()
}

// Handler serves the websocket endpoint at the configured path
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.serveWS)
	return mux
}

func (s *Service) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	if s.hub.count() >= s.config.MaxClients {
		s.rejected.Add(1)
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many inspectors")
		_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(s.config.WriteTimeout))
		_ = conn.Close()
		return
	}

	c := newClient(ClientID(s.hub.nextID.Add(1)), conn, s.config.SendQueueSize)
	s.hub.add(c)
	s.connected.Add(1)
	s.clients.Add(1)
	s.logger.Debug("inspector connected", "client", c.id, "remote", r.RemoteAddr)

	s.sendTo(c, serverMessage{Type: TypeHello, Worlds: s.Worlds(), Snapshot: s.snapshot()})
	go c.writeLoop(s.config, s.logger)
	c.readLoop(s.config, s.logger, s.handle)

	if s.hub.remove(c.id) {
		s.clients.Add(-1)
	}
	s.logger.Debug("inspector disconnected", "client", c.id)
}

func (s *Service) handle(c *client, msg clientMessage) {
	switch msg.Type {
	case TypeSnapshot:
		s.sendTo(c, serverMessage{Type: TypeSnapshot, Worlds: s.Worlds(), Snapshot: s.snapshot()})
	default:
		s.sendTo(c, serverMessage{Type: TypeError, Error: fmt.Sprintf("unknown request %q", msg.Type)})
	}
}

func (s *Service) snapshot() *status.Snapshot {
	snap := s.metrics.Snapshot()
	return &snap
}

func (s *Service) sendTo(c *client, msg serverMessage) {
	msg.Seq = s.seq.Add(1)
	data, err := encode(msg)
	if err != nil {
		s.logger.Warn("encode failed", "type", msg.Type, "error", err)
		return
	}
	if !c.send(data) {
		s.hub.dropped.Add(1)
		s.disconnect(c)
	}
}

// disconnect removes a client that cannot keep up with its send queue
func (s *Service) disconnect(c *client) {
	if s.hub.remove(c.id) {
		s.clients.Add(-1)
		s.logger.Debug("inspector too slow, disconnecting", "client", c.id)
	}
	c.close()
}

// Publish broadcasts a world event to every inspector
func (s *Service) Publish(e world.Event) {
	if s.hub == nil {
		return
	}
	s.events.Add(1)
	data, err := encode(serverMessage{Type: TypeEvent, Seq: s.seq.Add(1), Event: eventPayload(e)})
	if err != nil {
		s.logger.Warn("encode failed", "type", TypeEvent, "error", err)
		return
	}
	for _, c := range s.hub.broadcast(data) {
		s.disconnect(c)
	}
}

// Worlds lists the names of worlds with a network peer
func (s *Service) Worlds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.worlds)
}

// CreateWorld returns the peer forwarding the events of w
func (s *Service) CreateWorld(w *world.World) world.NetworkPeer {
	s.mu.Lock()
	s.worlds = append(s.worlds, w.Name())
	s.mu.Unlock()
	return &worldPeer{service: s, name: w.Name()}
}

type worldPeer struct {
	service *Service
	name    string
}

func (p *worldPeer) WorldEvent(e world.Event) {
	p.service.Publish(e)
}

func (p *worldPeer) Dispose() {
	s := p.service
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.worlds, p.name); i >= 0 {
		s.worlds = slices.Delete(s.worlds, i, i+1)
	}
}
