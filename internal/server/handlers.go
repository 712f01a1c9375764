package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/handiism/art-gallery/internal/catalog"
	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/gallery"
	"github.com/handiism/art-gallery/internal/render"
)

// Handler returns the router serving the gallery.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(chimw.Recoverer)

	router.Get("/", s.handleIndex)
	router.Get("/random", s.handleRandom)
	router.Get("/artworks/{id}", s.handleArtwork)
	router.Get("/artworks.json", s.handleCatalogJSON)
	router.Get("/healthz", s.handleHealth)

	return router
}

// session builds a controller over the current snapshot and applies the
// search from the request, if any.
func (s *Server) session(r *http.Request) (*gallery.Controller, gallery.Result) {
	ctrl := gallery.NewController(nil, s.cfg.Source, s.picker, nil)

	cat, loadErr := s.Snapshot()
	if cat == nil {
		res := ctrl.State()
		if loadErr != nil {
			res.Status = gallery.StatusLoadFailed
		}
		return ctrl, res
	}
	res := ctrl.SetCatalog(cat)

	q := r.URL.Query()
	switch {
	case q.Get("show") == "all":
		res = ctrl.ShowAll()
	case q.Has("q") || q.Has("style"):
		res = ctrl.Apply(filter.Query{Text: q.Get("q"), Style: q.Get("style")})
	}
	return ctrl, res
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, res := s.session(r)
	s.renderPage(w, r, http.StatusOK, res)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	ctrl, res := s.session(r)
	if ctrl.Catalog() != nil {
		res = ctrl.RandomHighlight()
	}
	s.renderPage(w, r, http.StatusOK, res)
}

func (s *Server) handleArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid artwork id", http.StatusBadRequest)
		return
	}

	ctrl, res := s.session(r)
	selected, err := ctrl.Select(id)
	if errors.Is(err, gallery.ErrNotFound) {
		s.renderPage(w, r, http.StatusNotFound, res)
		return
	}
	s.renderPage(w, r, http.StatusOK, selected)
}

func (s *Server) handleCatalogJSON(w http.ResponseWriter, _ *http.Request) {
	cat, _ := s.Snapshot()
	if cat == nil {
		http.Error(w, gallery.StatusLoadFailed, http.StatusServiceUnavailable)
		return
	}

	data, err := catalog.Encode(cat.All())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

type healthResponse struct {
	Status   string `json:"status"`
	Artworks int    `json:"artworks"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cat, loadErr := s.Snapshot()

	resp := healthResponse{Status: "ok", Artworks: cat.Len()}
	code := http.StatusOK
	if cat == nil {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
		if loadErr != nil {
			resp.Error = loadErr.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, code int, res gallery.Result) {
	page := render.Page{
		Text:    res.Query.Text,
		Style:   res.Query.Style,
		Styles:  res.Styles,
		Status:  res.Status,
		Gallery: res.Gallery,
		Details: res.Details,
		Theme:   res.Theme,
		Palette: res.Palette,
	}

	var buf bytes.Buffer
	if err := s.html.Render(&buf, page); err != nil {
		s.logger.Error("rendering page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// requestLogger logs request completion with structured fields.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("bytes", ww.BytesWritten()),
			}
			switch status := ww.Status(); {
			case status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Debug("request completed", fields...)
			}
		})
	}
}
