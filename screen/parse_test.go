// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package screen

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workstation = `
internal_address = 331
master_volume_show = 1
name = "Инженер КСРС"
    [AvailableRadiostations]
        [AvailableRadiostation01]
radio_name = "Улан-Удэ 134.1"
slot = -1
[#AvailableRadiostation01]
[AvailableRadiostation02]
radio_name = "Талакан 135.4"
slot = -1
[#AvailableRadiostation02]
[#AvailableRadiostations]
[PhonePanels]
[Panel01]
[Button01]
internal_address = 303
position_x = 0.02
position_y = 0.016
size_height = 0.147
size_width = 0.225
text = "С-6 ПУ"
[#Button01]
[Button02]
internal_address = 309
position_x = 0.264
position_y = 0.016
size_height = 0.147
size_width = 0.225
text = "С-9 ПУ"
[#Button02]
[#Panel01]
[Panel02]
[Button01]
internal_address = 338
position_x = 0.02
position_y = 0.016
size_height = 0.147
size_width = 0.225
text = "Диспетчер ПИВП вне ВТ"
[#Button01]
[#Panel02]
[#PhonePanels]
[RadioPanels]
[Panel01]
[Button01]
position_x = 0.02
position_y = 0.007
size_height = 0.158
size_width = 0.961
slot = 5
text = ""
[#Button01]
[#Panel01]
[#RadioPanels]
`

func TestParse(t *testing.T) {
	doc, err := Parse(workstation)
	require.NoError(t, err)

	t.Run("will read the global keys", func(t *testing.T) {
		addr, ok := doc.InternalAddress.Value()
		require.True(t, ok)
		require.Equal(t, uint32(331), addr)

		name, ok := doc.Name.Value()
		require.True(t, ok)
		require.Equal(t, "Инженер КСРС", name)
	})

	t.Run("will read the radio stations", func(t *testing.T) {
		require.Equal(t, []RadioStation{
			{ID: "AvailableRadiostation01", Name: "Улан-Удэ 134.1", Slot: -1},
			{ID: "AvailableRadiostation02", Name: "Талакан 135.4", Slot: -1},
		}, doc.RadioStations)
		require.False(t, doc.RadioStations[0].Assigned())
	})

	t.Run("will read the phone panels", func(t *testing.T) {
		require.Len(t, doc.PhonePanels, 2)

		p1 := doc.PhonePanels[0]
		require.Equal(t, "Panel01", p1.ID)
		require.Len(t, p1.Buttons, 2)

		b := p1.Buttons[0]
		require.Equal(t, "Button01", b.ID)
		require.Equal(t, uint32(303), b.InternalAddress)
		require.Equal(t, "С-6 ПУ", b.Text)
		require.InDelta(t, 0.02, b.Position.X, 1e-6)
		require.InDelta(t, 0.016, b.Position.Y, 1e-6)
		require.InDelta(t, 0.147, b.Size.Height, 1e-6)
		require.InDelta(t, 0.225, b.Size.Width, 1e-6)
		require.Equal(t, "Button02", p1.Buttons[1].ID)

		p2, ok := doc.PhonePanel("Panel02")
		require.True(t, ok)
		require.Len(t, p2.Buttons, 1)
		require.Equal(t, "Диспетчер ПИВП вне ВТ", p2.Buttons[0].Text)
	})

	t.Run("will read the radio panels", func(t *testing.T) {
		require.Len(t, doc.RadioPanels, 1)

		p, ok := doc.RadioPanel("Panel01")
		require.True(t, ok)
		require.Len(t, p.Buttons, 1)
		require.Equal(t, int32(5), p.Buttons[0].Slot)
		require.True(t, p.Buttons[0].Assigned())
		require.Equal(t, "", p.Buttons[0].Text)
		require.InDelta(t, 0.961, p.Buttons[0].Size.Width, 1e-6)

		_, ok = doc.RadioPanel("Panel02")
		require.False(t, ok)
	})
}

func TestParse_Example(t *testing.T) {
	doc, err := Parse(`
internal_address = 331
name = "Engineer"
[PhonePanels]
[Panel01]
[Button01]
internal_address = 303
position_x = 0.02
position_y = 0.016
size_height = 0.147
size_width = 0.225
text = "X"
[#Button01]
[#Panel01]
[#PhonePanels]
`)
	require.NoError(t, err)
	require.Equal(t, uint32(331), doc.InternalAddress.Or(0))
	require.Equal(t, "Engineer", doc.Name.Or(""))
	require.Len(t, doc.PhonePanels, 1)
	require.Equal(t, "Panel01", doc.PhonePanels[0].ID)
	require.Len(t, doc.PhonePanels[0].Buttons, 1)

	b := doc.PhonePanels[0].Buttons[0]
	require.Equal(t, "Button01", b.ID)
	require.Equal(t, uint32(303), b.InternalAddress)
	require.InDelta(t, 0.02, b.Position.X, 1e-6)
	require.Equal(t, "X", b.Text)
	require.Empty(t, doc.RadioStations)
	require.Empty(t, doc.RadioPanels)
}

func TestParse_NoSections(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "blank lines", input: "\n\n   \n\t\n"},
		{name: "free text", input: "hello\nworld\n"},
		{name: "unknown keys", input: "master_volume_show = 1\nfoo = bar\n"},
		{name: "stray closing tags", input: "[#PhonePanels]\n[#Panel01]\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse(tc.input)
			require.NoError(t, err)
			require.Equal(t, Document{}, doc)
			require.True(t, doc.InternalAddress.IsZero())
			require.True(t, doc.Name.IsZero())
		})
	}
}

func TestParse_Integers(t *testing.T) {
	testCases := []struct {
		value    string
		expected int32
	}{
		{value: "0", expected: 0},
		{value: "5", expected: 5},
		{value: "-1", expected: -1},
		{value: "+7", expected: 7},
		{value: "007", expected: 7},
		{value: "2147483647", expected: 2147483647},
		{value: "-2147483648", expected: -2147483648},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			doc, err := Parse(`
[AvailableRadiostations]
[AvailableRadiostation01]
slot = ` + tc.value + `
[#AvailableRadiostation01]
[#AvailableRadiostations]
[RadioPanels]
[Panel01]
[Button01]
slot = ` + tc.value + `
[#Button01]
[#Panel01]
[#RadioPanels]
`)
			require.NoError(t, err)
			require.Equal(t, tc.expected, doc.RadioStations[0].Slot)
			require.Equal(t, tc.expected, doc.RadioPanels[0].Buttons[0].Slot)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectInt bool
		key       string
		value     string
	}{
		{
			name:      "non-numeric global address",
			input:     "internal_address = abc",
			expectInt: true,
			key:       "internal_address",
			value:     "abc",
		},
		{
			name:      "negative global address",
			input:     "internal_address = -1",
			expectInt: true,
			key:       "internal_address",
			value:     "-1",
		},
		{
			name:      "station slot out of range",
			input:     "[AvailableRadiostations]\n[AvailableRadiostation01]\nslot = 4294967296\n[#AvailableRadiostation01]\n[#AvailableRadiostations]",
			expectInt: true,
			key:       "slot",
			value:     "4294967296",
		},
		{
			name:      "phone button address",
			input:     "[PhonePanels]\n[Panel01]\n[Button01]\ninternal_address = 30x\n[#Button01]\n[#Panel01]\n[#PhonePanels]",
			expectInt: true,
			key:       "internal_address",
			value:     "30x",
		},
		{
			name:      "radio button slot",
			input:     "[RadioPanels]\n[Panel01]\n[Button01]\nslot = five\n[#Button01]\n[#Panel01]\n[#RadioPanels]",
			expectInt: true,
			key:       "slot",
			value:     "five",
		},
		{
			name:  "phone button position",
			input: "[PhonePanels]\n[Panel01]\n[Button01]\nposition_x = 0,02\n[#Button01]\n[#Panel01]\n[#PhonePanels]",
			key:   "position_x",
			value: "0,02",
		},
		{
			name:  "radio button size",
			input: "[RadioPanels]\n[Panel01]\n[Button01]\nsize_width = wide\n[#Button01]\n[#Panel01]\n[#RadioPanels]",
			key:   "size_width",
			value: "wide",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// a well formed section before the failure must not leak into the result
			doc, err := Parse("name = before\n" + tc.input + "\nname = after")
			require.Error(t, err)
			require.Equal(t, Document{}, doc)

			var numErr *strconv.NumError
			require.ErrorAs(t, err, &numErr)
			require.NotEmpty(t, err.Error())

			if tc.expectInt {
				var ierr InvalidIntError
				require.ErrorAs(t, err, &ierr)
				require.Equal(t, tc.key, ierr.Key)
				require.Equal(t, tc.value, ierr.Value)
				return
			}

			var ferr InvalidFloatError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tc.key, ferr.Key)
			require.Equal(t, tc.value, ferr.Value)
		})
	}
}

func TestParse_Identifiers(t *testing.T) {
	doc, err := Parse(`
[PhonePanels]
[Panel02]
[Button_left]
[#Button_left]
[#Panel02]
[PanelMain]
[#PanelMain]
[#PhonePanels]
[AvailableRadiostations]
[AvailableRadiostation]
[#AvailableRadiostation]
[AvailableRadiostation-spare]
[#AvailableRadiostation-spare]
[#AvailableRadiostations]
`)
	require.NoError(t, err)

	require.Equal(t, "Panel02", doc.PhonePanels[0].ID)
	require.Equal(t, "Button_left", doc.PhonePanels[0].Buttons[0].ID)
	require.Equal(t, "PanelMain", doc.PhonePanels[1].ID)
	require.Equal(t, "AvailableRadiostation", doc.RadioStations[0].ID)
	require.Equal(t, "AvailableRadiostation-spare", doc.RadioStations[1].ID)

	t.Run("will open a button whose tag contains an equals sign", func(t *testing.T) {
		doc, err := Parse("[PhonePanels]\n[Panel01]\n[Button=1]\ntext = X\n[#Button=1]\n[#Panel01]\n[#PhonePanels]\n")
		require.NoError(t, err)

		require.Len(t, doc.PhonePanels, 1)
		require.Len(t, doc.PhonePanels[0].Buttons, 1)
		assert.Equal(t, "Button=1", doc.PhonePanels[0].Buttons[0].ID)
		assert.Equal(t, "X", doc.PhonePanels[0].Buttons[0].Text)
	})

	t.Run("will skip a top level section with an empty name", func(t *testing.T) {
		doc, err := Parse("[]\nname = hidden\n[#]\nname = shown\n")
		require.NoError(t, err)

		assert.Equal(t, "shown", doc.Name.Or(""))
	})
}

func TestParse_Order(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[RadioPanels]\n")
	ids := []string{"Panel09", "Panel01", "PanelZ", "Panel05"}
	for _, id := range ids {
		sb.WriteString("[" + id + "]\n")
		for _, b := range []string{"Button3", "Button1", "Button2"} {
			sb.WriteString("[" + b + "]\ntext = " + id + b + "\n[#" + b + "]\n")
		}
		sb.WriteString("[#" + id + "]\n")
	}
	sb.WriteString("[#RadioPanels]\n")

	doc, err := Parse(sb.String())
	require.NoError(t, err)
	require.Len(t, doc.RadioPanels, len(ids))
	for i, id := range ids {
		p := doc.RadioPanels[i]
		require.Equal(t, id, p.ID)
		require.Equal(t, []string{"Button3", "Button1", "Button2"}, []string{p.Buttons[0].ID, p.Buttons[1].ID, p.Buttons[2].ID})
		require.Equal(t, id+"Button3", p.Buttons[0].Text)
	}
}

func TestParse_ClosingTags(t *testing.T) {
	t.Run("will not end a section", func(t *testing.T) {
		t.Run("on a closing tag for a different name", func(t *testing.T) {
			doc, err := Parse(`
[PhonePanels]
[Panel01]
[Button01]
[#Button02]
[#Panel01]
text = "still Button01"
[#Button01]
[Button02]
[#Button02]
[#Panel01]
[#PhonePanels]
`)
			require.NoError(t, err)
			require.Len(t, doc.PhonePanels, 1)

			buttons := doc.PhonePanels[0].Buttons
			require.Len(t, buttons, 2)
			require.Equal(t, "still Button01", buttons[0].Text)
			require.Equal(t, "Button02", buttons[1].ID)
		})
	})

	t.Run("will drain to the end of input", func(t *testing.T) {
		t.Run("if closing tags are missing", func(t *testing.T) {
			doc, err := Parse(`
[PhonePanels]
[Panel01]
[Button01]
text = "open"
`)
			require.NoError(t, err)
			require.Len(t, doc.PhonePanels, 1)
			require.Equal(t, "open", doc.PhonePanels[0].Buttons[0].Text)
		})
	})
}

func TestParse_UnknownSections(t *testing.T) {
	t.Run("will leave the document untouched", func(t *testing.T) {
		t.Run("whatever the unknown section contains", func(t *testing.T) {
			doc, err := Parse(`
name = "Engineer"
[SomeOtherThing]
name = "Impostor"
internal_address = not-a-number
[PhonePanels]
[Panel01]
[#Panel01]
[#PhonePanels]
[#SomeOtherThing]
internal_address = 12
`)
			require.NoError(t, err)
			require.Equal(t, "Engineer", doc.Name.Or(""))
			require.Equal(t, uint32(12), doc.InternalAddress.Or(0))
			require.Empty(t, doc.PhonePanels)
		})
	})

	t.Run("will end the skip", func(t *testing.T) {
		t.Run("at the first closing tag of the same name", func(t *testing.T) {
			doc, err := Parse(`
[Extra]
[Extra]
[#Extra]
name = "outer"
[#Extra]
`)
			require.NoError(t, err)
			require.Equal(t, "outer", doc.Name.Or(""))
		})
	})

	t.Run("will skip unknown sections", func(t *testing.T) {
		t.Run("inside collections without recursing into them", func(t *testing.T) {
			doc, err := Parse(`
[AvailableRadiostations]
[Legend]
radio_name = "ignored"
[#Legend]
[AvailableRadiostation01]
radio_name = "kept"
[Comment]
[#Comment]
[#AvailableRadiostation01]
[#AvailableRadiostations]
`)
			require.NoError(t, err)
			require.Equal(t, []RadioStation{{ID: "AvailableRadiostation01", Name: "kept"}}, doc.RadioStations)
		})
	})
}

func TestParse_Strings(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "quoted", value: `"abc"`},
		{name: "bare", value: "abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse(`
name = ` + tc.value + `
[AvailableRadiostations]
[AvailableRadiostation01]
radio_name = ` + tc.value + `
[#AvailableRadiostation01]
[#AvailableRadiostations]
[PhonePanels]
[Panel01]
[Button01]
text = ` + tc.value + `
[#Button01]
[#Panel01]
[#PhonePanels]
`)
			require.NoError(t, err)
			require.Equal(t, "abc", doc.Name.Or(""))
			require.Equal(t, "abc", doc.RadioStations[0].Name)
			require.Equal(t, "abc", doc.PhonePanels[0].Buttons[0].Text)
		})
	}
}

func TestParse_RepeatedCollection(t *testing.T) {
	doc, err := Parse(`
[PhonePanels]
[Panel01]
[#Panel01]
[#PhonePanels]
[PhonePanels]
[Panel02]
[#Panel02]
[#PhonePanels]
`)
	require.NoError(t, err)
	require.Len(t, doc.PhonePanels, 1)
	require.Equal(t, "Panel02", doc.PhonePanels[0].ID)
}

func TestStrict(t *testing.T) {
	t.Run("will return an UnknownGlobalKeyError", func(t *testing.T) {
		t.Run("if a top level key is not known", func(t *testing.T) {
			doc, err := Parse(workstation, Strict())

			var kerr UnknownGlobalKeyError
			require.ErrorAs(t, err, &kerr)
			require.Equal(t, "master_volume_show", kerr.Key)
			require.NotEmpty(t, kerr.Error())
			require.Equal(t, Document{}, doc)
		})
	})

	t.Run("will still ignore unknown keys", func(t *testing.T) {
		t.Run("inside sections", func(t *testing.T) {
			doc, err := Parse(`
name = x
[AvailableRadiostations]
[AvailableRadiostation01]
volume = 11
[#AvailableRadiostation01]
[#AvailableRadiostations]
`, Strict())
			require.NoError(t, err)
			require.Len(t, doc.RadioStations, 1)
		})
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Parse(workstation+"[Mystery]\n[#Mystery]\n", Logger(log))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"key":"master_volume_show"`)
	assert.Contains(t, out, `"section":"Mystery"`)
}

func TestLogger_SkippedPanelSection(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Parse("[PhonePanels]\n[Panel01]\n[Label01]\n[#Panel01]\n[#PhonePanels]\n", Logger(log))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"line":"[Label01]"`)
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestParseReader(t *testing.T) {
	t.Run("will parse the whole reader", func(t *testing.T) {
		doc, err := ParseReader(strings.NewReader(workstation))
		require.NoError(t, err)
		require.Len(t, doc.PhonePanels, 2)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the reader fails", func(t *testing.T) {
			readErr := errors.New("read failed")
			_, err := ParseReader(io.MultiReader(strings.NewReader("name = x\n"), errReader{err: readErr}))
			require.ErrorIs(t, err, readErr)
		})
	})
}
