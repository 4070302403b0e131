package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads an operator-entered amount. Anything that cannot be read
// as a number is zero; data entry is never interrupted by a parse error.
//
// Accepted forms include "1234.5", "1 234,50", "€ 20,000" and "-12,5".
// Stray letters or symbols make the whole input unreadable, so "12abc34"
// is zero rather than 1234.
func ParseAmount(s string) decimal.Decimal {
	clean := cleanNumber(s)
	if clean == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParsePercent reads a percentage, tolerating a trailing "%".
func ParsePercent(s string) decimal.Decimal {
	return ParseAmount(strings.ReplaceAll(s, "%", ""))
}

// ParseCount reads an integer count; fractional input is truncated.
func ParseCount(s string) int {
	return int(ParseAmount(s).IntPart())
}

// ParseClock reads "HH:MM" (or "HHhMM", or a bare hour). Missing parts are zero.
func ParseClock(s string) ClockTime {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "h", ":")
	parts := strings.SplitN(s, ":", 2)
	var c ClockTime
	c.Hour = ParseCount(parts[0])
	if len(parts) == 2 {
		c.Minute = ParseCount(parts[1])
	}
	return c
}

// noise is what an operator may type around a number: currency signs,
// grouping spaces and a percent sign.
var noise = strings.NewReplacer(
	"€", "", "$", "", "£", "",
	" ", "", "\u00a0", "", "\u202f", "", "'", "",
	"%", "",
)

func cleanNumber(s string) string {
	s = noise.Replace(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	// What is left must be digits and separators only.
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
		default:
			return ""
		}
	}
	if digits == 0 {
		return ""
	}
	body := s

	lastDot := strings.LastIndex(body, ".")
	lastComma := strings.LastIndex(body, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Whichever separator comes last is the decimal one.
		if lastComma > lastDot {
			body = strings.ReplaceAll(body, ".", "")
			body = strings.Replace(body, ",", ".", 1)
		} else {
			body = strings.ReplaceAll(body, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(body, ",") == 1 && len(body)-lastComma-1 != 3 {
			body = strings.Replace(body, ",", ".", 1)
		} else {
			body = strings.ReplaceAll(body, ",", "")
		}
	case strings.Count(body, ".") > 1:
		body = strings.ReplaceAll(body, ".", "")
	}

	if neg {
		body = "-" + body
	}
	return body
}
