package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/handiism/art-gallery/internal/http"
	"github.com/handiism/art-gallery/internal/log"
	"github.com/handiism/art-gallery/internal/model"
)

// ErrUnsupportedSource is returned for catalog sources that are neither
// HTTP(S) URLs, file URLs nor local paths.
var ErrUnsupportedSource = errors.New("unsupported catalog source")

// Fetcher fetches a remote resource. *http.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Loader fetches and parses gallery catalogs.
//
// Loader reads catalogs from:
//   - HTTP(S) URLs, through the Fetcher
//   - file:// URLs and plain paths, from disk
//
// Parsed catalogs are cached per source for the configured TTL, so
// reloading an unchanged source is free. Call Invalidate before a reload
// that must see fresh data.
//
// Example usage:
//
//	loader := NewLoader(http.NewClient("", 0), 5*time.Minute, logger)
//	cat, err := loader.Load(ctx, "https://example.com/artworks.json")
type Loader struct {
	fetcher Fetcher
	cache   *gocache.Cache
	logger  *zap.Logger
}

// NewLoader creates a Loader.
//
// A nil fetcher selects a default HTTP client. A non-positive ttl disables
// caching.
func NewLoader(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Loader {
	if fetcher == nil {
		fetcher = http.NewClient("", 0)
	}

	var cache *gocache.Cache
	if ttl > 0 {
		cache = gocache.New(ttl, 2*ttl)
	}

	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		logger:  log.OrNop(logger).Named("catalog"),
	}
}

// Load fetches the catalog at source and parses it.
//
// A single attempt is made; there is no retry. On failure the error
// describes whether fetching or parsing failed and no catalog is returned.
func (l *Loader) Load(ctx context.Context, source string) (*model.Catalog, error) {
	if l.cache != nil {
		if cached, found := l.cache.Get(source); found {
			if cat, ok := cached.(*model.Catalog); ok {
				l.logger.Debug("catalog cache hit", zap.String("source", source))
				return cat, nil
			}
		}
	}

	started := time.Now()
	data, err := l.fetch(ctx, source)
	if err != nil {
		l.logger.Warn("catalog fetch failed", zap.String("source", source), zap.Error(err))
		return nil, fmt.Errorf("could not fetch catalog %s: %w", source, err)
	}

	cat, err := Parse(data)
	if err != nil {
		l.logger.Warn("catalog parse failed", zap.String("source", source), zap.Error(err))
		return nil, fmt.Errorf("could not parse catalog %s: %w", source, err)
	}

	if l.cache != nil {
		l.cache.SetDefault(source, cat)
	}

	l.logger.Info("catalog loaded",
		zap.String("source", source),
		zap.Int("artworks", cat.Len()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return cat, nil
}

// Invalidate drops the cached catalog for source.
func (l *Loader) Invalidate(source string) {
	if l.cache != nil {
		l.cache.Delete(source)
	}
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if path, ok := LocalPath(source); ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetcher.Get(ctx, source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, source)
	}
}

// LocalPath returns the file system path of a local catalog source.
//
// Plain paths and file:// URLs are local; HTTP(S) URLs and unknown
// schemes are not. A single-letter scheme is taken as a Windows drive.
func LocalPath(source string) (string, bool) {
	if source == "" {
		return "", false
	}

	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return source, true
	}
	if u.Scheme == "file" {
		if u.Path == "" {
			return u.Opaque, u.Opaque != ""
		}
		return u.Path, true
	}
	return "", false
}
