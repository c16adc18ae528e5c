package text

import "strings"

// Wrap breaks s into lines no wider than maxWidth. Words are joined greedily;
// a word wider than maxWidth on its own is split at rune boundaries. Every
// returned line holds at least one rune, so a maxWidth smaller than a single
// glyph still terminates. Whitespace runs collapse to one space.
func Wrap(s string, maxWidth, size float64, weight Weight, m Measurer) []string {
	m = orEstimate(m)
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if m.Measure(candidate, size, weight) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		if m.Measure(w, size, weight) <= maxWidth {
			line = w
			continue
		}
		pieces := hardSplit(w, maxWidth, size, weight, m)
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// hardSplit cuts word into the longest prefixes that fit maxWidth.
func hardSplit(word string, maxWidth, size float64, weight Weight, m Measurer) []string {
	runes := []rune(word)
	var out []string
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && m.Measure(string(runes[:n+1]), size, weight) <= maxWidth {
			n++
		}
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}
