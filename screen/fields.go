// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package screen

import (
	"strconv"
	"strings"

	"github.com/z5labs/panelcfg/config"
	"github.com/z5labs/panelcfg/internal/linescan"
)

const (
	keyInternalAddress = "internal_address"
	keyName            = "name"
	keyRadioName       = "radio_name"
	keySlot            = "slot"
	keyPositionX       = "position_x"
	keyPositionY       = "position_y"
	keySizeHeight      = "size_height"
	keySizeWidth       = "size_width"
	keyText            = "text"
)

type fieldSetter[T any] func(rec *T, value string) error

// setField looks up key in fields and applies value to rec.
// Unknown keys are reported through the bool.
func setField[T any](fields map[string]fieldSetter[T], rec *T, key, value string) (bool, error) {
	set, ok := fields[key]
	if !ok {
		return false, nil
	}
	return true, set(rec, value)
}

var documentFields = map[string]fieldSetter[Document]{
	keyInternalAddress: func(d *Document, v string) error {
		n, err := parseUint32(keyInternalAddress, v)
		if err != nil {
			return err
		}
		d.InternalAddress = config.ValueOf(n)
		return nil
	},
	keyName: func(d *Document, v string) error {
		d.Name = config.ValueOf(linescan.CleanString(v))
		return nil
	},
}

var radioStationFields = map[string]fieldSetter[RadioStation]{
	keyRadioName: func(s *RadioStation, v string) error {
		s.Name = linescan.CleanString(v)
		return nil
	},
	keySlot: func(s *RadioStation, v string) (err error) {
		s.Slot, err = parseInt32(keySlot, v)
		return
	},
}

var phoneButtonFields = map[string]fieldSetter[PhoneButton]{
	keyInternalAddress: func(b *PhoneButton, v string) (err error) {
		b.InternalAddress, err = parseUint32(keyInternalAddress, v)
		return
	},
	keyPositionX: func(b *PhoneButton, v string) (err error) {
		b.Position.X, err = parseFloat32(keyPositionX, v)
		return
	},
	keyPositionY: func(b *PhoneButton, v string) (err error) {
		b.Position.Y, err = parseFloat32(keyPositionY, v)
		return
	},
	keySizeHeight: func(b *PhoneButton, v string) (err error) {
		b.Size.Height, err = parseFloat32(keySizeHeight, v)
		return
	},
	keySizeWidth: func(b *PhoneButton, v string) (err error) {
		b.Size.Width, err = parseFloat32(keySizeWidth, v)
		return
	},
	keyText: func(b *PhoneButton, v string) error {
		b.Text = linescan.CleanString(v)
		return nil
	},
}

var radioButtonFields = map[string]fieldSetter[RadioButton]{
	keyPositionX: func(b *RadioButton, v string) (err error) {
		b.Position.X, err = parseFloat32(keyPositionX, v)
		return
	},
	keyPositionY: func(b *RadioButton, v string) (err error) {
		b.Position.Y, err = parseFloat32(keyPositionY, v)
		return
	},
	keySizeHeight: func(b *RadioButton, v string) (err error) {
		b.Size.Height, err = parseFloat32(keySizeHeight, v)
		return
	},
	keySizeWidth: func(b *RadioButton, v string) (err error) {
		b.Size.Width, err = parseFloat32(keySizeWidth, v)
		return
	},
	keySlot: func(b *RadioButton, v string) (err error) {
		b.Slot, err = parseInt32(keySlot, v)
		return
	},
	keyText: func(b *RadioButton, v string) error {
		b.Text = linescan.CleanString(v)
		return nil
	},
}

func parseInt32(key, v string) (int32, error) {
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, InvalidIntError{Key: key, Value: v, Cause: err}
	}
	return int32(n), nil
}

func parseUint32(key, v string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(v, "+"), 10, 32)
	if err != nil {
		return 0, InvalidIntError{Key: key, Value: v, Cause: err}
	}
	return uint32(n), nil
}

func parseFloat32(key, v string) (float32, error) {
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, InvalidFloatError{Key: key, Value: v, Cause: err}
	}
	return float32(f), nil
}
