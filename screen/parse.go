// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package screen

import (
	"io"
	"log/slog"
	"strings"

	"github.com/z5labs/panelcfg/internal/linescan"
	"github.com/z5labs/panelcfg/internal/try"
)

const (
	sectionRadioStations = "AvailableRadiostations"
	sectionPhonePanels   = "PhonePanels"
	sectionRadioPanels   = "RadioPanels"

	prefixRadioStation = "AvailableRadiostation"
	prefixPanel        = "Panel"
	prefixButton       = "Button"
)

// Option configures how a screen config is parsed.
type Option func(*parser)

// Strict makes unknown top level keys an error instead of ignoring them.
func Strict() Option {
	return func(p *parser) {
		p.strict = true
	}
}

// Logger sets the logger skipped sections and keys are reported to at
// debug level. By default nothing is logged.
func Logger(log *slog.Logger) Option {
	return func(p *parser) {
		p.log = log
	}
}

type parser struct {
	s      *linescan.Scanner
	strict bool
	log    *slog.Logger
}

// Parse parses the screen config in s. The text must already be decoded,
// see the screenfile package for reading the original 8-bit files.
//
// On error the zero Document is returned.
func Parse(s string, opts ...Option) (Document, error) {
	p := &parser{
		s:   linescan.New(s),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	doc, err := p.document()
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ParseReader reads all of r and parses it with [Parse]. If r is
// also an io.Closer it is closed.
func ParseReader(r io.Reader, opts ...Option) (_ Document, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	return Parse(string(b), opts...)
}

func (p *parser) document() (Document, error) {
	var doc Document
	for {
		line, ok := p.s.Next()
		if !ok {
			return doc, nil
		}

		if name, ok := linescan.SectionName(line); ok {
			var err error
			switch name {
			case sectionRadioStations:
				doc.RadioStations, err = p.radioStations()
			case sectionPhonePanels:
				doc.PhonePanels, err = parsePanels(p, sectionPhonePanels, phoneButtonFields, func(id string) PhoneButton {
					return PhoneButton{ID: id}
				})
			case sectionRadioPanels:
				doc.RadioPanels, err = parsePanels(p, sectionRadioPanels, radioButtonFields, func(id string) RadioButton {
					return RadioButton{ID: id}
				})
			default:
				p.skipSection(name)
			}
			if err != nil {
				return Document{}, err
			}
			continue
		}

		key, value, ok := linescan.ParseKV(line)
		if !ok {
			p.skipLine(line)
			continue
		}
		known, err := setField(documentFields, &doc, key, value)
		if err != nil {
			return Document{}, err
		}
		if known {
			continue
		}
		if p.strict {
			return Document{}, UnknownGlobalKeyError{Key: key}
		}
		p.log.Debug("ignoring unknown global key", slog.String("key", key))
	}
}

// skipSection consumes lines up to and including the first closing tag
// for name. Nested sections of the same name are not counted.
func (p *parser) skipSection(name string) {
	p.log.Debug("skipping unknown section", slog.String("section", name))
	for {
		line, ok := p.s.Next()
		if !ok || linescan.IsClosingTag(line, name) {
			return
		}
	}
}

func (p *parser) skipLine(line string) {
	p.log.Debug("skipping line", slog.String("line", line))
}

// collection consumes the children of the collection section name up to
// and including its closing tag. Children are sections whose name starts
// with childPrefix and are handed to child right after their opening tag.
func (p *parser) collection(name, childPrefix string, child func(id string) error) error {
	for {
		line, ok := p.s.Next()
		if !ok || linescan.IsClosingTag(line, name) {
			return nil
		}

		id, ok := linescan.SectionName(line)
		if !ok || !strings.HasPrefix(id, childPrefix) {
			p.skipLine(line)
			continue
		}
		err := child(id)
		if err != nil {
			return err
		}
	}
}

// record consumes the body of the section id up to and including its
// closing tag, applying key value pairs to rec. If nested is not nil,
// opening tags are handed to it before any key value parsing, so a tag
// like "[Button=1]" still opens a section.
func record[T any](p *parser, id string, rec *T, fields map[string]fieldSetter[T], nested func(name string) error) error {
	for {
		line, ok := p.s.Next()
		if !ok || linescan.IsClosingTag(line, id) {
			return nil
		}

		if nested != nil {
			if name, ok := linescan.SectionName(line); ok {
				err := nested(name)
				if err != nil {
					return err
				}
				continue
			}
		}

		key, value, ok := linescan.ParseKV(line)
		if !ok {
			p.skipLine(line)
			continue
		}
		_, err := setField(fields, rec, key, value)
		if err != nil {
			return err
		}
	}
}

func (p *parser) radioStations() ([]RadioStation, error) {
	var stations []RadioStation
	err := p.collection(sectionRadioStations, prefixRadioStation, func(id string) error {
		station := RadioStation{ID: id}
		err := record(p, id, &station, radioStationFields, nil)
		if err != nil {
			return err
		}
		stations = append(stations, station)
		return nil
	})
	return stations, err
}

func parsePanels[B PhoneButton | RadioButton](
	p *parser,
	name string,
	fields map[string]fieldSetter[B],
	newButton func(id string) B,
) ([]Panel[B], error) {
	var panels []Panel[B]
	err := p.collection(name, prefixPanel, func(id string) error {
		panel := Panel[B]{ID: id}
		err := record(p, id, &panel, nil, func(name string) error {
			if !strings.HasPrefix(name, prefixButton) {
				p.skipLine("[" + name + "]")
				return nil
			}

			button := newButton(name)
			err := record(p, name, &button, fields, nil)
			if err != nil {
				return err
			}
			panel.Buttons = append(panel.Buttons, button)
			return nil
		})
		if err != nil {
			return err
		}
		panels = append(panels, panel)
		return nil
	})
	return panels, err
}
