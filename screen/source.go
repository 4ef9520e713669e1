// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package screen

import (
	"github.com/z5labs/panelcfg/config"
	"github.com/z5labs/panelcfg/config/key"
)

// Top level keys under which the collections of a Document are applied
// to a config.Store.
const (
	KeyRadioStations key.Name = "radio_stations"
	KeyPhonePanels   key.Name = "phone_panels"
	KeyRadioPanels   key.Name = "radio_panels"
)

// Apply implements the config.Source interface. Every field is set under
// the key it was read from, nested below the ids of its sections, e.g.
//
//	phone_panels.Panel01.Button01.text
//
// Records sharing an id within the same parent collapse into one entry,
// the later record winning. A panel without buttons is set as an empty
// map, so it is still present.
//
// Ids are used as single keys. An id containing "." is stored under that
// one key, so it cannot be addressed by a chain built with [key.Parse].
func (d Document) Apply(store config.Store) error {
	if n, ok := d.InternalAddress.Value(); ok {
		err := store.Set(key.Name(keyInternalAddress), n)
		if err != nil {
			return err
		}
	}
	if name, ok := d.Name.Value(); ok {
		err := store.Set(key.Name(keyName), name)
		if err != nil {
			return err
		}
	}

	for _, s := range d.RadioStations {
		err := setAll(store, key.Chain{KeyRadioStations, key.Name(s.ID)}, map[string]any{
			keyRadioName: s.Name,
			keySlot:      s.Slot,
		})
		if err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for _, panel := range d.PhonePanels {
		err := emptyPanel(store, seen, KeyPhonePanels, panel.ID, len(panel.Buttons))
		if err != nil {
			return err
		}
		for _, b := range panel.Buttons {
			err := setAll(store, key.Chain{KeyPhonePanels, key.Name(panel.ID), key.Name(b.ID)}, map[string]any{
				keyInternalAddress: b.InternalAddress,
				keyPositionX:       b.Position.X,
				keyPositionY:       b.Position.Y,
				keySizeHeight:      b.Size.Height,
				keySizeWidth:       b.Size.Width,
				keyText:            b.Text,
			})
			if err != nil {
				return err
			}
		}
	}

	seen = make(map[string]bool)
	for _, panel := range d.RadioPanels {
		err := emptyPanel(store, seen, KeyRadioPanels, panel.ID, len(panel.Buttons))
		if err != nil {
			return err
		}
		for _, b := range panel.Buttons {
			err := setAll(store, key.Chain{KeyRadioPanels, key.Name(panel.ID), key.Name(b.ID)}, map[string]any{
				keyPositionX:  b.Position.X,
				keyPositionY:  b.Position.Y,
				keySizeHeight: b.Size.Height,
				keySizeWidth:  b.Size.Width,
				keySlot:       b.Slot,
				keyText:       b.Text,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// emptyPanel sets an empty map for a panel without buttons, unless a
// panel with the same id was applied before.
func emptyPanel(store config.Store, seen map[string]bool, collection key.Name, id string, buttons int) error {
	defer func() { seen[id] = true }()
	if buttons > 0 || seen[id] {
		return nil
	}
	return store.Set(key.Chain{collection, key.Name(id)}, map[string]any{})
}

func setAll(store config.Store, parent key.Chain, fields map[string]any) error {
	for name, v := range fields {
		chain := append(parent[:len(parent):len(parent)], key.Name(name))
		err := store.Set(chain, v)
		if err != nil {
			return err
		}
	}
	return nil
}
