package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/handiism/art-gallery/internal/catalog"
	"github.com/handiism/art-gallery/internal/config"
	"github.com/handiism/art-gallery/internal/gallery"
	"github.com/handiism/art-gallery/internal/http"
	"github.com/handiism/art-gallery/internal/log"
)

// Run starts the TUI application.
//
// The logger must not write to the terminal; pass one writing to a file
// or nil.
func Run(settings *config.Settings, logger *zap.Logger) error {
	logger = log.OrNop(logger)

	client := http.NewClient(settings.UserAgent, settings.Timeout())
	loader := catalog.NewLoader(client, settings.CacheExpiration(), logger)
	ctrl := gallery.NewController(loader, settings.CatalogSource, nil, gallery.LogProgress(logger))

	opts := Options{CardWidth: settings.CardWidth}

	if path, ok := catalog.LocalPath(settings.CatalogSource); ok && settings.WatchCatalog {
		watcher, err := catalog.NewWatcher(path, settings.Debounce(), logger)
		if err != nil {
			return err
		}
		changes, err := watcher.Start()
		if err != nil {
			_ = watcher.Stop()
			return err
		}
		defer watcher.Stop()
		opts.Changes = changes
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if settings.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(NewModel(ctrl, opts), programOpts...)
	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(Model); ok && m.err != nil {
		logger.Warn("gallery closed after load error", zap.Error(m.err))
	}
	return nil
}
