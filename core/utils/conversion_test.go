package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{" 7 ", 7, false},
		{"1,200", 1200, false},
		{"12.0", 12, false},
		{"+3", 3, false},
		{"-1", 0, false},
		{"", 0, true},
		{"2.5", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseQuantity(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToString(t *testing.T) {
	s := "x"
	var nilPtr *string
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "x", ToString(&s))
	assert.Equal(t, "", ToString(nilPtr))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "b", ToString([]byte("b")))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("yes"))
	assert.True(t, ToBool(" TRUE "))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(2.0))
}
