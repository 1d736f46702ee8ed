package otd

import (
	"strconv"
	"strings"
	"unicode"
)

// section is a [Name] header and the lines up to the next header.
type section struct {
	name  string
	start int // line index of the header
	lines []string
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func findSections(lines []string) []section {
	var sections []section
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
			continue
		}
		if n := len(sections); n > 0 {
			sections[n-1].lines = lines[sections[n-1].start+1 : i]
		}
		sections = append(sections, section{name: trimmed[1 : len(trimmed)-1], start: i})
	}
	if n := len(sections); n > 0 {
		sections[n-1].lines = lines[sections[n-1].start+1:]
	}
	return sections
}

// content yields the trimmed lines of a section, skipping blanks and ';'
// comments.
func content(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// keyValue splits a line at its first '=' and trims both sides.
func keyValue(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}

type pair struct {
	key   string
	value string
}

// multiValues splits a line holding several key=value pairs separated by
// spaces, such as "x=0 y=0 X=100 Y=0 R=50". A value ends where the rest of
// the line starts with a letter and continues with letters or digits up to the
// next '='. Values are at least one character long.
func multiValues(line string) []pair {
	var result []pair
	remaining := strings.TrimSpace(line)
	for remaining != "" {
		eq := strings.IndexByte(remaining, '=')
		if eq < 0 {
			break
		}
		key := strings.TrimSpace(remaining[:eq])
		afterEq := remaining[eq+1:]

		end := len(afterEq)
		first := true
		for i := range afterEq {
			if first {
				first = false
				continue
			}
			if startsKey(afterEq[i:]) {
				end = i
				break
			}
		}

		result = append(result, pair{key: key, value: strings.TrimSpace(afterEq[:end])})
		remaining = strings.TrimSpace(afterEq[end:])
	}
	return result
}

// startsKey reports whether s begins with an identifier followed by '='.
func startsKey(s string) bool {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return false
	}
	for i, r := range s[:eq] {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	// s[:eq] is empty when s starts with '='.
	return eq > 0
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func floatOr(s string, def float64) float64 {
	if v, ok := parseFloat(s); ok {
		return v
	}
	return def
}

func intOr(s string, def int) int {
	if v, ok := parseInt(s); ok {
		return v
	}
	return def
}

func intPtr(s string) *int {
	if v, ok := parseInt(s); ok {
		return &v
	}
	return nil
}
