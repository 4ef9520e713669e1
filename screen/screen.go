// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package screen

import "github.com/z5labs/panelcfg/config"

// Document is a parsed screen config.
type Document struct {
	// InternalAddress is the subscriber number of the workstation.
	InternalAddress config.Value[uint32] `json:"internal_address,omitzero" yaml:"internal_address,omitempty"`

	// Name is the display name of the workstation.
	Name config.Value[string] `json:"name,omitzero" yaml:"name,omitempty"`

	RadioStations []RadioStation `json:"radio_stations,omitempty" yaml:"radio_stations,omitempty"`
	PhonePanels   []PhonePanel   `json:"phone_panels,omitempty" yaml:"phone_panels,omitempty"`
	RadioPanels   []RadioPanel   `json:"radio_panels,omitempty" yaml:"radio_panels,omitempty"`
}

// PhonePanel returns the first phone panel with the given id.
func (d Document) PhonePanel(id string) (PhonePanel, bool) {
	return findPanel(d.PhonePanels, id)
}

// RadioPanel returns the first radio panel with the given id.
func (d Document) RadioPanel(id string) (RadioPanel, bool) {
	return findPanel(d.RadioPanels, id)
}

func findPanel[B PhoneButton | RadioButton](panels []Panel[B], id string) (Panel[B], bool) {
	for _, p := range panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel[B]{}, false
}

// RadioStation is a radio station available at the workstation.
type RadioStation struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"radio_name" yaml:"radio_name"`

	// Slot is negative if the station is not assigned to a slot.
	Slot int32 `json:"slot" yaml:"slot"`
}

// Assigned reports whether the station occupies a slot.
func (s RadioStation) Assigned() bool {
	return s.Slot >= 0
}

// Panel is a named page of buttons.
type Panel[B PhoneButton | RadioButton] struct {
	ID      string `json:"id" yaml:"id"`
	Buttons []B    `json:"buttons,omitempty" yaml:"buttons,omitempty"`
}

// PhonePanel is a page of direct call buttons.
type PhonePanel = Panel[PhoneButton]

// RadioPanel is a page of radio buttons.
type RadioPanel = Panel[RadioButton]

// Point is a position relative to the panel, where 0 is the top or
// left edge and 1 the bottom or right edge.
type Point struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Size is the extent of a button relative to the panel.
type Size struct {
	Height float32 `json:"height" yaml:"height"`
	Width  float32 `json:"width" yaml:"width"`
}

// PhoneButton calls the subscriber at InternalAddress.
type PhoneButton struct {
	ID              string `json:"id" yaml:"id"`
	InternalAddress uint32 `json:"internal_address" yaml:"internal_address"`
	Position        Point  `json:"position" yaml:"position"`
	Size            Size   `json:"size" yaml:"size"`
	Text            string `json:"text" yaml:"text"`
}

// RadioButton selects the radio station assigned to Slot.
type RadioButton struct {
	ID       string `json:"id" yaml:"id"`
	Position Point  `json:"position" yaml:"position"`
	Size     Size   `json:"size" yaml:"size"`
	Slot     int32  `json:"slot" yaml:"slot"`
	Text     string `json:"text" yaml:"text"`
}

// Assigned reports whether the button is bound to a slot.
func (b RadioButton) Assigned() bool {
	return b.Slot >= 0
}
