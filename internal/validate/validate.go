// Package validate holds the syntax checks applied to shop record fields.
//
// Every function is pure and total: it looks only at its argument and never
// consults stored data. Uniqueness and reference checks live in package shop.
package validate

import (
	"strconv"
	"strings"
)

// Year bounds accepted by Date.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Name reports whether s holds only ASCII letters, spaces, or bytes with the
// high bit set (accented letters in UTF-8). The empty string is accepted.
func Name(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c == ' ':
		case c >= 0x80:
		default:
			return false
		}
	}
	return true
}

// TaxID reports whether s holds only digits, '.' and '-'.
func TaxID(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

// Phone reports whether s holds only digits, parentheses, '-' and spaces.
func Phone(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && c != '(' && c != ')' && c != '-' && c != ' ' {
			return false
		}
	}
	return true
}

// Plate reports whether s is usable as a vehicle plate: non-empty and free of
// the record separator and line breaks.
func Plate(s string) bool {
	return s != "" && FreeText(s)
}

// FreeText reports whether s can be stored in a ';'-delimited record line.
func FreeText(s string) bool {
	return !strings.ContainsAny(s, ";\r\n")
}

// Date reports whether s is a calendar date written as dd/mm/yyyy.
//
// The three fields must be integers separated by '/'. The year must fall in
// [MinYear, MaxYear], the month in [1, 12], and the day in
// [1, DaysInMonth(month, year)].
func Date(s string) bool {
	day, month, year, ok := ParseDate(s)
	if !ok {
		return false
	}
	if year < MinYear || year > MaxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(month, year)
}

// ParseDate splits s into its day, month and year fields without range
// checks. ok is false unless s has exactly three integer fields; blanks
// around a field make it invalid.
func ParseDate(s string) (day, month, year int, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		fields[i] = n
	}
	return fields[0], fields[1], fields[2], true
}

// DaysInMonth returns the number of days of month in year, or 0 when month is
// outside [1, 12].
func DaysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
