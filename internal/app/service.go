// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/artamananda/portfolio/internal/domain/catalog"
	"github.com/artamananda/portfolio/internal/domain/model"
	"github.com/artamananda/portfolio/pkg/logger"
	"github.com/artamananda/portfolio/pkg/metrics"
)

// UsageFetcher retrieves the upstream usage document as JSON.
type UsageFetcher interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// Service implements the API dependencies for the portfolio site.
type Service struct {
	mu sync.RWMutex

	// Content
	catalog *catalog.Catalog
	profile model.Profile

	// Upstream
	usage UsageFetcher

	// State
	started   bool
	startedAt time.Time

	usageOK     atomic.Int64
	usageFailed atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalog sets the project listing.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithProfile sets the author profile.
func WithProfile(p model.Profile) Option {
	return func(s *Service) {
		s.profile = p
	}
}

// WithUsageFetcher sets the upstream relayed by Usage.
func WithUsageFetcher(f UsageFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.usage = f
		}
	}
}

// New constructs a new Service. Without options it serves the built-in
// catalog and profile and has no usage upstream.
func New(opts ...Option) *Service {
	s := &Service{
		catalog: catalog.Default(),
		profile: catalog.DefaultProfile(),
		logger:  nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready to serve.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if err := s.profile.Validate(); err != nil {
		return err
	}

	s.started = true
	s.startedAt = time.Now()
	metrics.UpdateCatalogProjects(s.catalog.Len())

	s.logger.Info(ctx, "portfolio service started",
		logger.Int("projects", s.catalog.Len()),
		logger.String("author", s.profile.Name()),
		logger.Any("usageConfigured", s.usage != nil),
	)

	return nil
}

// Stop marks the service stopped. It is safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "portfolio service stopped",
		logger.Int64("usageFetches", s.usageOK.Load()),
		logger.Int64("usageFailures", s.usageFailed.Load()),
	)
}

// Usage fetches the upstream usage document once. No caching, no retry.
func (s *Service) Usage(ctx context.Context) (json.RawMessage, error) {
	if s.usage == nil {
		return nil, ErrUsageNotConfigured
	}

	payload, err := s.usage.Fetch(ctx)
	if err != nil {
		s.usageFailed.Add(1)
		return nil, err
	}
	s.usageOK.Add(1)
	return payload, nil
}

// Projects returns the listing in display order.
func (s *Service) Projects(_ context.Context) []model.Project {
	return s.catalog.All()
}

// Project returns the project with the given slug.
func (s *Service) Project(_ context.Context, slug string) (model.Project, error) {
	return s.catalog.Find(slug)
}

// Profile returns the author profile.
func (s *Service) Profile(_ context.Context) model.Profile {
	return s.profile
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"projects":        s.catalog.Len(),
		"usageConfigured": s.usage != nil,
		"usageFetches":    s.usageOK.Load(),
		"usageFailures":   s.usageFailed.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		metrics.UpdateCatalogProjects(s.catalog.Len())
	}

	return stats
}
