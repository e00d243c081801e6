package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ErrNotFound reports a lookup of an unregistered service
var ErrNotFound = errors.New("service not found")

// Hub owns the registered services and drives them in dependency order
type Hub struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	services map[string]Service
	order    []string // dependency order, computed on InitAll
	started  []string // started services, for reverse stop
}

// NewHub creates an empty hub; nil logger means slog.Default
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:   logger,
		services: make(map[string]Service),
	}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}
	h.services[name] = svc
	h.order = nil
	return nil
}

// Get returns the service registered under name
func (h *Hub) Get(name string) (Service, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return svc, nil
}

// Lookup returns the service under name as T
func Lookup[T Service](h *Hub, name string) (T, error) {
	var zero T
	svc, err := h.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, fmt.Errorf("service %s is %T", name, svc)
	}
	return typed, nil
}

// InitAll resolves the order and initializes every service with args
// On failure the already initialized services are stopped in reverse order
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolveOrder()
		if err != nil {
			return err
		}
		h.order = order
	}

	for i, name := range h.order {
		if err := h.services[name].Init(args...); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("service %s init: %w", name, err)
		}
	}
	return nil
}

// StartAll starts in dependency order, rolling back on failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		return errors.New("services not initialized")
	}
	h.started = h.started[:0]
	for _, name := range h.order {
		if err := h.services[name].Start(); err != nil {
			h.stopReverse(h.started)
			h.started = nil
			return fmt.Errorf("service %s start: %w", name, err)
		}
		h.started = append(h.started, name)
		h.logger.Info("service started", "service", name)
	}
	return nil
}

// StopAll stops started services in reverse order; errors are logged
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopReverse(h.started)
	h.started = nil
}

func (h *Hub) stopReverse(names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		if err := h.services[names[i]].Stop(); err != nil {
			h.logger.Error("service stop failed", "service", names[i], "error", err)
			continue
		}
		h.logger.Info("service stopped", "service", names[i])
	}
}

// Order returns the resolved dependency order, nil before InitAll
func (h *Hub) Order() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.order)
}

// resolveOrder runs Kahn's algorithm; ties break by name for a stable order
func (h *Hub) resolveOrder() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)

	for name, svc := range h.services {
		inDegree[name] += 0
		for _, dep := range svc.Dependencies() {
			if _, ok := h.services[dep]; !ok {
				return nil, fmt.Errorf("service %s depends on unregistered %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}
	slices.Sort(ready)

	order := make([]string, 0, len(h.services))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		var next []string
		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				next = append(next, dependent)
			}
		}
		slices.Sort(next)
		ready = append(ready, next...)
	}

	if len(order) != len(h.services) {
		return nil, errors.New("circular service dependency")
	}
	return order, nil
}
