// Package parser turns free-text model answers into structured recipes.
//
// The model is asked for a loose "Title: / Ingredients / Steps" layout but
// nothing guarantees it complies, so parsing is a best-effort scan over
// blank-line separated blocks that never fails.
package parser

import (
	"iter"
	"strings"
	"unicode"
)

// Blocks yields the non-empty, trimmed blocks of text separated by two or
// more consecutive newlines. Windows line endings are normalized first.
func Blocks(text string) iter.Seq[string] {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return func(yield func(string) bool) {
		rest := text
		for rest != "" {
			var chunk string
			if i := strings.Index(rest, "\n\n"); i >= 0 {
				chunk, rest = rest[:i], rest[i+2:]
			} else {
				chunk, rest = rest, ""
			}
			if block := strings.TrimSpace(chunk); block != "" {
				if !yield(block) {
					return
				}
			}
		}
	}
}

// indexFold returns the byte index of the first case-insensitive match of
// an ASCII needle in s, or -1.
func indexFold(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isBulletOrSpace(r rune) bool {
	return r == '-' || r == '•' || unicode.IsSpace(r)
}

// cleanItem strips leading bullets and surrounding whitespace.
func cleanItem(line string) string {
	return strings.TrimSpace(strings.TrimLeftFunc(line, isBulletOrSpace))
}

func startsWithBullet(block string) bool {
	return strings.HasPrefix(block, "-") || strings.HasPrefix(block, "•")
}
