// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/z5labs/panelcfg/config/key"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which applies every environment variable
// starting with prefix. The prefix is removed, the remainder is lower
// cased and "__" separates nested keys, so with the prefix "PANELCFG_"
// the variable PANELCFG_LOG__LEVEL sets the key "log.level".
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || !strings.HasPrefix(k, src.prefix) {
			continue
		}
		k = strings.ToLower(strings.TrimPrefix(k, src.prefix))
		if k == "" {
			continue
		}

		var chain key.Chain
		for _, part := range strings.Split(k, "__") {
			chain = append(chain, key.Name(part))
		}
		err := store.Set(chain, v)
		if err != nil {
			return err
		}
	}
	return nil
}
