package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestClockSpeed(t *testing.T) {
	tests := []struct {
		name    string
		speed   string
		clock   int
		want    int
		wantErr bool
	}{
		{"default", "", 0, 360, false},
		{"normal", "1", 0, 360, false},
		{"half", "0.5", 0, 180, false},
		{"half short", ".5", 0, 180, false},
		{"double", "2", 0, 720, false},
		{"double float", "2.0", 0, 720, false},
		{"explicit clock wins", "2", 1000, 1000, false},
		{"unsupported", "3", 0, 0, true},
		{"garbage", "fast", 0, 0, true},
		{"negative clock", "1", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockSpeed(tt.speed, tt.clock)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
	assert.NotNil(t, CreateLogger(false, false))
}
