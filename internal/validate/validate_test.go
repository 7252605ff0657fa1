package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ana Silva", true},
		{"João Conceição", true},
		{"", true},
		{"Ana2", false},
		{"Ana;Silva", false},
		{"O'Brien", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.in), "Name(%q)", tt.in)
	}
}

func TestTaxID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"111.111.111-11", true},
		{"12345678900", true},
		{"", true},
		{"111 111", false},
		{"abc", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TaxID(tt.in), "TaxID(%q)", tt.in)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"(11) 99999-0000", true},
		{"11999990000", true},
		{"+55 11 9999", false},
		{"ramal 2", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Phone(tt.in), "Phone(%q)", tt.in)
	}
}

func TestPlateAndFreeText(t *testing.T) {
	assert.True(t, Plate("ABC1234"))
	assert.True(t, Plate("ABC-1D23"))
	assert.False(t, Plate(""))
	assert.False(t, Plate("AB;C"))

	assert.True(t, FreeText("brake noise, front left"))
	assert.True(t, FreeText(""))
	assert.False(t, FreeText("a;b"))
	assert.False(t, FreeText("line\nbreak"))
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"leap day in leap year", "29/02/2024", true},
		{"leap day in common year", "29/02/2023", false},
		{"april has 30 days", "31/04/2020", false},
		{"month 13", "15/13/2020", false},
		{"month 0", "15/00/2020", false},
		{"day 0", "00/05/2020", false},
		{"regular date", "10/05/2024", true},
		{"single digit fields", "1/2/2020", true},
		{"century not leap", "29/02/1900", false},
		{"400 year leap", "29/02/2000", true},
		{"year below range", "01/01/1899", false},
		{"year above range", "01/01/2101", false},
		{"year upper bound", "31/12/2100", true},
		{"dashes", "10-05-2024", false},
		{"two fields", "10/05", false},
		{"four fields", "10/05/2024/1", false},
		{"letters", "aa/bb/cccc", false},
		{"blank inside field", "10 /05/2024", false},
		{"leading blank", " 10/05/2024", false},
		{"trailing blank", "10/05/2024 ", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in), "Date(%q)", tt.in)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(1, 2023))
	assert.Equal(t, 28, DaysInMonth(2, 2023))
	assert.Equal(t, 29, DaysInMonth(2, 2024))
	assert.Equal(t, 30, DaysInMonth(11, 2024))
	assert.Equal(t, 0, DaysInMonth(13, 2024))
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2023))
}
