package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/art-gallery/internal/catalog"
	"github.com/handiism/art-gallery/internal/config"
	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/gallery"
	"github.com/handiism/art-gallery/internal/http"
	"github.com/handiism/art-gallery/internal/log"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	source     string
	debug      bool

	settings *config.Settings
	logger   *zap.Logger
	picker   *filter.Picker
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gallery",
		Short: "Browse an art gallery catalog from the command line",
		Long: `Browse an art gallery catalog: filter artworks by text and style,
pick a random highlight, export the gallery or serve it over HTTP.

For interactive mode, use: gallery-tui`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (JSON or YAML)")
	root.PersistentFlags().StringVarP(&a.source, "source", "s", "", "catalog source: path, file:// or http(s):// URL (overrides config)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newRandomCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newRegisterCmd(a),
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	settings := config.DefaultSettings()
	if a.configPath != "" {
		var err error
		settings, err = config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if a.source != "" {
		settings.CatalogSource = a.source
	}
	a.settings = settings

	logger, err := log.New(log.Options{Path: settings.LogPath, Level: settings.LogLevel, Debug: a.debug})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) loader() *catalog.Loader {
	client := http.NewClient(a.settings.UserAgent, a.settings.Timeout())
	return catalog.NewLoader(client, a.settings.CacheExpiration(), a.logger)
}

// load creates a controller and loads the catalog.
func (a *app) load(ctx context.Context) (*gallery.Controller, error) {
	ctrl := gallery.NewController(a.loader(), a.settings.CatalogSource, a.picker, gallery.LogProgress(a.logger))
	res, err := ctrl.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s %w", res.Status, err)
	}
	return ctrl, nil
}

// queryFlags registers the search flags shared by several subcommands.
func queryFlags(cmd *cobra.Command, q *filter.Query) {
	cmd.Flags().StringVarP(&q.Text, "query", "q", "", "text to search in title, artist, mood and style")
	cmd.Flags().StringVar(&q.Style, "style", filter.StyleAll, `style to show, or "all"`)
}
