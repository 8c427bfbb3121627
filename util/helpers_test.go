package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"640x480", 640, 480, false},
		{" 10X20 ", 10, 20, false},
		{"640", 0, 0, true},
		{"ax480", 0, 0, true},
		{"640xb", 0, 0, true},
		{"0x10", 0, 0, true},
		{"1x2x3", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 9))
	assert.Equal(t, 9, Clamp(12, 0, 9))
	assert.Equal(t, 4, Clamp(4, 0, 9))
}
