// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides composable key value configuration sources.
//
// A [Source] applies its key value pairs to a [Store]. [Read] merges any
// number of sources, later sources overriding earlier ones, into a
// [Manager] which can then be unmarshalled into a struct:
//
//	m, err := config.Read(
//	    config.FromYaml(config.NewFileReader(os.DirFS("."), "panelcfg.yaml")),
//	    config.FromEnv("PANELCFG_"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	var settings Settings
//	err = m.Unmarshal(&settings)
//
// Keys may be nested. Nested keys are represented by a [key.Chain] and
// are stored as nested maps, so "log.level" and {"log": {"level": ...}}
// address the same value.
//
// [Value] is used for optional values where "not set" must be kept
// apart from "set to the zero value".
package config
