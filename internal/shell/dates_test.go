package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"10/05/2024", "10/05/2024", true},
		{" 29/02/2024 ", "29/02/2024", true},
		{"29/02/2023", "29/02/2023", false},
		{"31/04/2020", "31/04/2020", false},
		{"today", "10/05/2024", true},
		{"yesterday", "09/05/2024", true},
		{"tomorrow", "11/05/2024", true},
		{"", "", false},
		{"banana", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeDate(tt.in, fixedNow)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
