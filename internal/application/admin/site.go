package admin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// ErrModelNotRegistered is returned for unknown model names
var ErrModelNotRegistered = shared.NewDomainError("NOT_FOUND", "Model is not registered in the admin")

// IndexEntry is one model on the admin index
type IndexEntry struct {
	Name              string `json:"name"`
	VerboseName       string `json:"verbose_name"`
	VerboseNamePlural string `json:"verbose_name_plural"`
}

// Site is the registry of admin models, in registration order
type Site struct {
	mu        sync.RWMutex
	resources map[string]Resource
	order     []string
}

// NewSite creates an empty site
func NewSite() *Site {
	return &Site{resources: make(map[string]Resource)}
}

// Register adds a resource under its model name. Names must be unique.
func (s *Site) Register(r Resource) error {
	name := r.Meta().Name
	if name == "" {
		return errors.New("admin: model name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[name]; ok {
		return fmt.Errorf("admin: model %q is already registered", name)
	}
	s.resources[name] = r
	s.order = append(s.order, name)
	return nil
}

// Lookup returns the resource registered under name
func (s *Site) Lookup(name string) (Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[name]
	if !ok {
		return nil, ErrModelNotRegistered
	}
	return r, nil
}

// Index lists the registered models
func (s *Site) Index() []IndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]IndexEntry, 0, len(s.order))
	for _, name := range s.order {
		m := s.resources[name].Meta()
		out = append(out, IndexEntry{
			Name:              m.Name,
			VerboseName:       m.VerboseName,
			VerboseNamePlural: m.VerboseNamePlural,
		})
	}
	return out
}
