// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type readCloser struct {
	io.Reader
	closed bool
}

func (rc *readCloser) Close() error {
	rc.closed = true
	return nil
}

type failReader struct{ err error }

func (r failReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestYaml_Apply(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the reader fails", func(t *testing.T) {
			readErr := errors.New("read failed")
			_, err := Read(FromYaml(failReader{err: readErr}))
			require.ErrorIs(t, err, readErr)
		})

		t.Run("if the yaml is invalid", func(t *testing.T) {
			_, err := Read(FromYaml(strings.NewReader("log: [unclosed")))

			var yerr InvalidYamlError
			require.ErrorAs(t, err, &yerr)
			require.NotEmpty(t, yerr.Error())
		})
	})

	t.Run("will close the reader", func(t *testing.T) {
		t.Run("if it implements io.Closer", func(t *testing.T) {
			rc := &readCloser{Reader: strings.NewReader("encoding: koi8-r\n")}
			m, err := Read(FromYaml(rc))
			require.NoError(t, err)
			require.True(t, rc.closed)
			require.Equal(t, "koi8-r", m.store["encoding"])
		})
	})
}
