package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/handiism/art-gallery/internal/catalog"
	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/gallery"
	ioutils "github.com/handiism/art-gallery/internal/io"
	"github.com/handiism/art-gallery/internal/registration"
	"github.com/handiism/art-gallery/internal/render"
	"github.com/handiism/art-gallery/internal/server"
)

func newListCmd(a *app) *cobra.Command {
	var q filter.Query
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artworks matching a search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			res := apply(ctrl, q)
			out := cmd.OutOrStdout()

			switch format {
			case "text":
				fmt.Fprint(out, render.Plain(res.Gallery))
				fmt.Fprintln(out, res.Status)
				return nil
			case "json":
				data, err := catalog.Encode(res.View)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case "html":
				html, err := render.NewHTML()
				if err != nil {
					return err
				}
				return html.Render(out, pageOf(res))
			default:
				return fmt.Errorf("unknown format %q (want text, json or html)", format)
			}
		},
	}

	queryFlags(cmd, &q)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or html")
	return cmd
}

func newRandomCmd(a *app) *cobra.Command {
	var q filter.Query

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Highlight a random artwork of a search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			apply(ctrl, q)
			res := ctrl.RandomHighlight()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Status)
			if res.Details != nil {
				fmt.Fprintln(out)
				fmt.Fprint(out, render.PlainDetails(*res.Details))
				fmt.Fprintf(out, "Theme: %s\n", res.Theme.Name)
			}
			return nil
		},
	}

	queryFlags(cmd, &q)
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one artwork",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid artwork id %q", args[0])
			}

			ctrl, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			res, err := ctrl.Select(id)
			if errors.Is(err, gallery.ErrNotFound) {
				return fmt.Errorf("no artwork with id %d", id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, render.PlainDetails(*res.Details))
			fmt.Fprintf(out, "Theme: %s\n", res.Theme.Name)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var q filter.Query
	var format, output string
	var columns int
	var scale float64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the gallery as an image or HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			res := apply(ctrl, q)

			var data []byte
			var ext string
			switch format {
			case "png", "jpeg", "jpg":
				imgFormat := ioutils.FormatPNG
				if format != "png" {
					imgFormat = ioutils.FormatJPEG
				}
				data, err = ioutils.NewImageService().SwatchSheet(cmd.Context(), res.Gallery, ioutils.SheetOptions{
					Columns: columns,
					Scale:   scale,
					Format:  imgFormat,
				})
				ext = imgFormat.Extension()
			case "html":
				data, err = renderHTML(res)
				ext = ".html"
			default:
				return fmt.Errorf("unknown format %q (want png, jpeg or html)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = exportName(q) + ext
			}
			if err := ioutils.WriteFile(cmd.Context(), output, data); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\nExported %d artwork(s) to %s\n", res.Status, len(res.View), output)
			return nil
		},
	}

	queryFlags(cmd, &q)
	cmd.Flags().StringVarP(&format, "format", "f", "png", "export format: png, jpeg or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the search)")
	cmd.Flags().IntVar(&columns, "columns", 4, "tiles per row in image exports")
	cmd.Flags().Float64Var(&scale, "scale", 1, "image scale factor")
	return cmd
}

// apply shows the whole catalog for an empty search and filters otherwise.
func apply(ctrl *gallery.Controller, q filter.Query) gallery.Result {
	if q.IsAll() {
		return ctrl.ShowAll()
	}
	return ctrl.Apply(q)
}

// exportName derives a file name (without extension) from the search.
func exportName(q filter.Query) string {
	name := "gallery"
	if !q.IsAll() {
		if q.Text != "" {
			name += " " + q.Text
		}
		if q.Style != "" && q.Style != filter.StyleAll {
			name += " " + q.Style
		}
	}
	if safe := ioutils.SanitizeFileName(name); safe != "" {
		return safe
	}
	return "gallery"
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.settings.ServeAddress
			}

			srv, err := server.New(server.Config{
				Address:  addr,
				Source:   a.settings.CatalogSource,
				Watch:    a.settings.WatchCatalog,
				Debounce: a.settings.Debounce(),
			}, a.loader(), a.picker, a.logger)
			if err != nil {
				return err
			}

			// A failed load is shown on the pages; keep serving so a fixed
			// catalog file can be picked up by the watcher.
			if err := srv.Load(cmd.Context()); err != nil {
				a.logger.Warn(gallery.StatusLoadFailed + " " + err.Error())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving gallery on %s\n", addr)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func newRegisterCmd(_ *app) *cobra.Command {
	var form registration.Form

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Fill in the user registration form",
		Long: `Fill in the user registration form.

Without flags the form is collected interactively. With any field flag the
form is validated as given, without prompting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var res registration.Result
			if formFlagsSet(cmd) {
				res = registration.Validate(form)
			} else {
				var err error
				res, err = registration.Run(nil, nil)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			if !res.OK {
				return errors.New(registration.FailureTitle)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	cmd.Flags().StringVar(&form.Age, "age", "", "age")
	cmd.Flags().StringVar(&form.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&form.Country, "country", "", "country")
	cmd.Flags().BoolVar(&form.Terms, "agree", false, "agree to the Terms and Conditions")
	return cmd
}

var formFlags = []string{"name", "email", "password", "age", "gender", "country", "agree"}

func formFlagsSet(cmd *cobra.Command) bool {
	for _, name := range formFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func pageOf(res gallery.Result) render.Page {
	return render.Page{
		Text:    res.Query.Text,
		Style:   res.Query.Style,
		Styles:  res.Styles,
		Status:  res.Status,
		Gallery: res.Gallery,
		Details: res.Details,
		Theme:   res.Theme,
		Palette: res.Palette,
	}
}

func renderHTML(res gallery.Result) ([]byte, error) {
	html, err := render.NewHTML()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, pageOf(res)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
