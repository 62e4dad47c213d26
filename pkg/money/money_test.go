package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole amount", 11000, "R$ 110,00"},
		{"with cents", 12345, "R$ 123,45"},
		{"thousands separator", 123456, "R$ 1.234,56"},
		{"zero", 0, "R$ 0,00"},
		{"single cent", 1, "R$ 0,01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(tt.cents))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"dot decimal", "110.50", 11050},
		{"comma decimal", "110,50", 11050},
		{"integer", "45", 4500},
		{"whitespace", " 19.9 ", 1990},
		{"rounds half up", "10.005", 1001},
		{"empty defaults to zero", "", 0},
		{"garbage defaults to zero", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.input))
		})
	}
}
