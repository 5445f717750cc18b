// Package format turns raw job field values into display-ready text.
package format

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// PreviewLength is the number of runes of a description shown in the table
const PreviewLength = 120

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five reserved markup characters so the value can be
// placed inside HTML text or attribute values without becoming structure.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// Terminal makes a value safe for a single terminal cell: control
// characters (including ESC, so no ANSI sequences) are dropped and
// whitespace runs collapse to one space.
func Terminal(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = true
			continue
		case unicode.IsControl(r), r == unicode.ReplacementChar:
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// Preview returns at most n runes of s
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Applications parses an applications count typed by the user. Anything
// that is not a finite non-negative number becomes 0; fractions truncate.
func Applications(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// Count renders a non-negative count, clamping negatives to zero
func Count(n int) string {
	if n < 0 {
		n = 0
	}
	return strconv.Itoa(n)
}

// Fallback returns s, or def when s is blank
func Fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
