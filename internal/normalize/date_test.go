package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISODate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"15/05/2025", "2025-05-15"},
		{"5/3/2024", "2024-03-05"},
		{"05-03-2024", "2024-03-05"},
		{"05.03.2024", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
		{"2024-03-05T10:11:12Z", "2024-03-05"},
		{"Jueves 15 de Mayo del 2025", "2025-05-15"},
		{"1 de septiembre de 2024", "2024-09-01"},
		{"3 de Febrero 2023", "2023-02-03"},
		{"29/02/2024", "2024-02-29"},

		{"", ""},
		{"31/02/2024", ""},
		{"29/02/2023", ""},
		{"15/13/2025", ""},
		{"00/01/2025", ""},
		{"15 de Brumario del 2025", ""},
		{"mañana", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ISODate(tt.in))
		})
	}
}

func TestDate_ReportsFailure(t *testing.T) {
	t.Parallel()

	_, ok := Date("not a date")
	assert.False(t, ok)

	d, ok := Date("01/12/2025")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 12, int(d.Month()))
	assert.Equal(t, 1, d.Day())
}
