package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expected     time.Time
		wantRepaired bool
		wantErr      bool
	}{
		{
			name:     "strict form passes through",
			input:    "2024-06-09",
			expected: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "unpadded legacy form is repaired",
			input:        "2024-6-9",
			expected:     time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			wantRepaired: true,
		},
		{
			name:    "garbage is rejected",
			input:   "June 9th",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, repaired, err := normalizeDate(tt.input)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, date)
			assert.Equal(t, tt.wantRepaired, repaired)
		})
	}
}
