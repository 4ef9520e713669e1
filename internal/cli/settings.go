// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"log/slog"

	"github.com/z5labs/panelcfg/config"
	"github.com/z5labs/panelcfg/config/key"
	"github.com/z5labs/panelcfg/screenfile"

	"github.com/spf13/cobra"
)

// Settings configure every command. They are merged from, in increasing
// order of precedence, the defaults, the YAML file given by --config,
// the environment and command line flags.
type Settings struct {
	Encoding string `config:"encoding"`
	Strict   bool   `config:"strict"`
	Trace    bool   `config:"trace"`

	Log struct {
		Level slog.Level `config:"level"`
	} `config:"log"`

	Render struct {
		Width  int    `config:"width"`
		Height int    `config:"height"`
		Color  string `config:"color"`
	} `config:"render"`
}

func defaultSettings() config.Map {
	return config.Map{
		"encoding": screenfile.DefaultEncoding,
		"log": map[string]any{
			"level": "warn",
		},
		"render": map[string]any{
			"width":  78,
			"height": 20,
			"color":  "34",
		},
	}
}

// flagKeys maps flag names to the settings they override.
var flagKeys = map[string]key.Chain{
	"encoding":  {key.Name("encoding")},
	"strict":    {key.Name("strict")},
	"trace":     {key.Name("trace")},
	"log-level": {key.Name("log"), key.Name("level")},
	"width":     {key.Name("render"), key.Name("width")},
	"height":    {key.Name("render"), key.Name("height")},
}

// flagSource applies the flags which were explicitly set on the
// command line, so flag defaults never shadow other sources.
type flagSource struct {
	cmd *cobra.Command
}

func (src flagSource) Apply(store config.Store) error {
	flags := src.cmd.Flags()
	for name, chain := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		err := store.Set(chain, f.Value.String())
		if err != nil {
			return err
		}
	}
	return nil
}

func readSettings(app *App, cmd *cobra.Command, path string) (Settings, error) {
	srcs := []config.Source{defaultSettings()}
	if path != "" {
		srcs = append(srcs, config.FromYaml(config.NewFileReader(app.fs, path)))
	}
	srcs = append(
		srcs,
		config.FromEnv(app.envPrefix),
		flagSource{cmd: cmd},
	)

	m, err := config.Read(srcs...)
	if err != nil {
		return Settings{}, ConfigReadError{Cause: err}
	}

	var settings Settings
	err = m.Unmarshal(&settings)
	if err != nil {
		return Settings{}, ConfigUnmarshalError{Cause: err}
	}
	return settings, nil
}
