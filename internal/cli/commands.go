// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/z5labs/panelcfg/config"
	"github.com/z5labs/panelcfg/config/key"
	"github.com/z5labs/panelcfg/internal/try"
	"github.com/z5labs/panelcfg/render"
	"github.com/z5labs/panelcfg/screen"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Output formats of the inspect and get commands.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Panel kinds accepted by the render command.
const (
	KindPhone = "phone"
	KindRadio = "radio"
)

type fileDocument struct {
	File     string          `json:"file" yaml:"file"`
	Document screen.Document `json:"document" yaml:"document"`
}

func inspectCmd(sess *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Parse screen configs and print them as YAML or JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: sess.runE(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if format != FormatYAML && format != FormatJSON {
				return UnknownFormatError{Format: format}
			}

			err := checkStdin(args)
			if err != nil {
				return err
			}

			l, err := sess.loader()
			if err != nil {
				return err
			}

			docs := make([]fileDocument, len(args))
			g, gctx := errgroup.WithContext(ctx)
			for i, path := range args {
				g.Go(func() (err error) {
					defer try.Recover(&err)

					doc, err := sess.load(gctx, l, cmd.InOrStdin(), path)
					if err != nil {
						return err
					}
					docs[i] = fileDocument{File: path, Document: doc}
					return nil
				})
			}
			err = g.Wait()
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, docs...)
		}),
	}

	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", FormatYAML, "output format, yaml or json")
	flags.Bool("strict", false, "reject unknown global keys")
	return cmd
}

// checkStdin rejects args naming stdin more than once, since stdin
// can only be read by one of the concurrent loads.
func checkStdin(args []string) error {
	var n int
	for _, arg := range args {
		if arg == "-" {
			n++
		}
	}
	if n > 1 {
		return RepeatedStdinError{Count: n}
	}
	return nil
}

func encode[T any](w io.Writer, format string, vs ...T) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, v := range vs {
			err := enc.Encode(v)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, v := range vs {
			err := enc.Encode(v)
			if err != nil {
				return err
			}
		}
		return enc.Close()
	}
}

func validateCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that screen configs parse, reporting every file",
		Args:  cobra.MinimumNArgs(1),
		RunE: sess.runE(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			err := checkStdin(args)
			if err != nil {
				return err
			}

			l, err := sess.loader()
			if err != nil {
				return err
			}

			results := make([]error, len(args))
			var g errgroup.Group
			for i, path := range args {
				g.Go(func() error {
					defer try.Recover(&results[i])

					_, results[i] = sess.load(ctx, l, cmd.InOrStdin(), path)
					return nil
				})
			}
			_ = g.Wait()

			w := cmd.OutOrStdout()
			var failed int
			for i, path := range args {
				if results[i] != nil {
					failed++
					fmt.Fprintf(w, "%s: %s\n", path, results[i])
					continue
				}
				fmt.Fprintf(w, "%s: ok\n", path)
			}
			if failed > 0 {
				return ValidationError{Failed: failed, Total: len(args)}
			}
			return nil
		}),
	}

	cmd.Flags().Bool("strict", false, "reject unknown global keys")
	return cmd
}

func renderCmd(sess *session) *cobra.Command {
	var (
		kind    string
		panelID string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw the buttons of one panel in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: sess.runE(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			l, err := sess.loader()
			if err != nil {
				return err
			}
			doc, err := sess.load(ctx, l, cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var (
				title   string
				buttons []render.Button
			)
			switch kind {
			case KindPhone:
				p, err := selectPanel(KindPhone, doc.PhonePanels, panelID)
				if err != nil {
					return err
				}
				title, buttons = p.ID, render.PhoneButtons(p)
			case KindRadio:
				p, err := selectPanel(KindRadio, doc.RadioPanels, panelID)
				if err != nil {
					return err
				}
				title, buttons = p.ID, render.RadioButtons(p)
			default:
				return UnknownKindError{Kind: kind}
			}

			sess.log.DebugContext(ctx, "rendering panel", slog.String("panel", title), slog.Int("buttons", len(buttons)))

			r := sess.settings.Render
			return render.Panel(
				cmd.OutOrStdout(),
				title,
				buttons,
				render.Dimensions(r.Width, r.Height),
				render.Color(r.Color),
			)
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&kind, "kind", KindPhone, "kind of panel, phone or radio")
	flags.StringVar(&panelID, "panel", "", "id of the panel (default the first panel)")
	flags.Int("width", 0, "canvas width in cells (default 78)")
	flags.Int("height", 0, "canvas height in cells (default 20)")
	return cmd
}

// selectPanel returns the panel with the given id, or the first
// panel if id is empty.
func selectPanel[B screen.PhoneButton | screen.RadioButton](kind string, panels []screen.Panel[B], id string) (screen.Panel[B], error) {
	for _, p := range panels {
		if id == "" || p.ID == id {
			return p, nil
		}
	}
	return screen.Panel[B]{}, PanelNotFoundError{Kind: kind, ID: id}
}

func getCmd(sess *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get FILE [KEY]",
		Short: "Print a value of a screen config by its dotted key",
		Long: `Print a value of a screen config by its dotted key, for example

  panelcfg get screen.cfg phone_panels.Panel01.Button01.text

Keys naming a section print the whole section. Without a key
the whole config is printed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: sess.runE(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if format != FormatYAML && format != FormatJSON {
				return UnknownFormatError{Format: format}
			}

			l, err := sess.loader()
			if err != nil {
				return err
			}
			doc, err := sess.load(ctx, l, cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			m, err := config.Read(doc)
			if err != nil {
				return err
			}

			var v any = m.Values()
			if len(args) == 2 {
				var ok bool
				v, ok = m.Lookup(key.Parse(args[1]))
				if !ok {
					return KeyNotFoundError{Key: args[1]}
				}
			}

			switch x := v.(type) {
			case map[string]any:
				return encode(cmd.OutOrStdout(), format, x)
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), x)
				return err
			}
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatYAML, "output format of sections, yaml or json")
	return cmd
}

// UnknownFormatError occurs when an output format is neither yaml nor json.
type UnknownFormatError struct {
	Format string
}

// Error implements the [builtin.error] interface.
func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format: %q", e.Format)
}

// UnknownKindError occurs when a panel kind is neither phone nor radio.
type UnknownKindError struct {
	Kind string
}

// Error implements the [builtin.error] interface.
func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown panel kind: %q", e.Kind)
}

// PanelNotFoundError occurs when a screen config has no matching panel.
type PanelNotFoundError struct {
	Kind string
	ID   string
}

// Error implements the [builtin.error] interface.
func (e PanelNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no %s panels found", e.Kind)
	}
	return fmt.Sprintf("%s panel not found: %s", e.Kind, e.ID)
}

// KeyNotFoundError occurs when a key does not name any value.
type KeyNotFoundError struct {
	Key string
}

// Error implements the [builtin.error] interface.
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}

// RepeatedStdinError occurs when "-" is given more than once.
type RepeatedStdinError struct {
	Count int
}

// Error implements the [builtin.error] interface.
func (e RepeatedStdinError) Error() string {
	return fmt.Sprintf("stdin can only be read once, but \"-\" was given %d times", e.Count)
}

// ValidationError reports how many files failed validation.
type ValidationError struct {
	Failed int
	Total  int
}

// Error implements the [builtin.error] interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%d of %d files are invalid", e.Failed, e.Total)
}
