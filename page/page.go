package page

import (
	"strings"
)

// Page is the decoded content of the status page, one entry per line
type Page []string

// Parse splits text into lines
func Parse(text string) Page {
	lines := strings.Split(text, "\n")
	p := make(Page, 0, len(lines))
	for _, l := range lines {
		p = append(p, strings.TrimRight(l, "\r"))
	}
	return p
}

// Find returns the whitespace separated fields of the first line accepted by match
func (p Page) Find(match func(fields []string) bool) ([]string, bool) {
	for _, l := range p {
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		if match(fields) {
			return fields, true
		}
	}
	return nil, false
}

// FindLine returns the first line containing s
func (p Page) FindLine(s string) (string, bool) {
	for _, l := range p {
		if strings.Contains(l, s) {
			return l, true
		}
	}
	return "", false
}

// Field returns the n-th field (1-based), or an empty string when the line is too short
func Field(fields []string, n int) string {
	if n < 1 || n > len(fields) {
		return ""
	}
	return fields[n-1]
}

// FirstIs matches lines whose first field is one of tokens
func FirstIs(tokens ...string) func([]string) bool {
	return nthIs(1, tokens)
}

// SecondIs matches lines whose second field is one of tokens
func SecondIs(tokens ...string) func([]string) bool {
	return nthIs(2, tokens)
}

func nthIs(n int, tokens []string) func([]string) bool {
	return func(fields []string) bool {
		f := Field(fields, n)
		for _, t := range tokens {
			if f == t {
				return true
			}
		}
		return false
	}
}
