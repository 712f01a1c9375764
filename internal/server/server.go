// Package server serves the art gallery as HTML pages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/art-gallery/internal/catalog"
	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/gallery"
	"github.com/handiism/art-gallery/internal/log"
	"github.com/handiism/art-gallery/internal/model"
	"github.com/handiism/art-gallery/internal/render"
)

const shutdownTimeout = 10 * time.Second

// Config holds runtime options for the gallery HTTP server.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string

	// Source is the catalog source passed to the loader.
	Source string

	// Watch reloads local catalogs when the file changes.
	Watch bool

	// Debounce coalesces bursts of file events.
	Debounce time.Duration
}

// Server renders gallery pages from a shared catalog snapshot.
//
// Each request builds its own controller over the snapshot, so requests
// never see each other's search or highlight. Reloads swap the snapshot.
type Server struct {
	cfg    Config
	loader gallery.CatalogLoader
	picker *filter.Picker
	html   *render.HTML
	logger *zap.Logger

	mu      sync.RWMutex
	catalog *model.Catalog
	loadErr error
}

// New creates a Server. Call Load before serving.
func New(cfg Config, loader gallery.CatalogLoader, picker *filter.Picker, logger *zap.Logger) (*Server, error) {
	html, err := render.NewHTML()
	if err != nil {
		return nil, err
	}
	if picker == nil {
		picker = filter.NewPicker(nil)
	}
	return &Server{
		cfg:    cfg,
		loader: loader,
		picker: picker,
		html:   html,
		logger: log.OrNop(logger).Named("server"),
	}, nil
}

// Load fetches the catalog.
//
// A failed load is remembered: pages report the load error and show an
// empty gallery until a reload succeeds.
func (s *Server) Load(ctx context.Context) error {
	cat, err := s.loader.Load(ctx, s.cfg.Source)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.catalog, s.loadErr = nil, err
		return err
	}
	s.catalog, s.loadErr = cat, nil
	return nil
}

// Reload refetches the catalog bypassing the loader cache.
//
// A failed reload keeps the previous snapshot when there is one.
func (s *Server) Reload(ctx context.Context) error {
	s.loader.Invalidate(s.cfg.Source)
	cat, err := s.loader.Load(ctx, s.cfg.Source)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.catalog == nil {
			s.loadErr = err
		}
		return err
	}
	s.catalog, s.loadErr = cat, nil
	return nil
}

// Snapshot returns the current catalog and the error of the last failed
// initial load.
func (s *Server) Snapshot() (*model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.loadErr
}

// Run serves HTTP until ctx is done. For local catalog sources with
// watching enabled it also reloads the catalog when the file changes.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The watcher starts first so a setup failure leaves nothing running.
	var watcher *catalog.Watcher
	var changes <-chan struct{}
	if path, ok := catalog.LocalPath(s.cfg.Source); ok && s.cfg.Watch {
		var err error
		watcher, err = catalog.NewWatcher(path, s.cfg.Debounce, s.logger)
		if err != nil {
			return err
		}
		changes, err = watcher.Start()
		if err != nil {
			_ = watcher.Stop()
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.cfg.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving on %s: %w", s.cfg.Address, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if watcher != nil {
		g.Go(func() error {
			defer watcher.Stop()
			return s.watch(ctx, changes)
		})
	}

	return g.Wait()
}

func (s *Server) watch(ctx context.Context, changes <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn("catalog reload failed", zap.Error(err))
				continue
			}
			cat, _ := s.Snapshot()
			s.logger.Info("catalog reloaded", zap.Int("artworks", cat.Len()))
		}
	}
}
