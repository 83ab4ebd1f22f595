package serial

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	_, err = Open(DefaultConfig(""))
	assert.ErrorIs(t, err, ErrNoDevice)

	_, err = Open(DefaultConfig(filepath.Join(t.TempDir(), "no-such-tty")))
	assert.Error(t, err)
}

func TestIdleTimeout(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		err     error
		wantN   int
		wantErr error
	}{
		{"timeout on idle line", 0, io.EOF, 0, nil},
		{"data", 5, nil, 5, nil},
		{"data before eof", 3, io.EOF, 3, io.EOF},
		{"device error", 0, errBroken, 0, errBroken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := idleTimeout(tt.n, tt.err)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

var errBroken = errors.New("device unplugged")
