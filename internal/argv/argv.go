package argv

import (
	"strings"
	"unicode"
)

// Tokenize splits a free-form argument string into discrete tokens.
//
// A run enclosed in single quotes becomes part of one token with the quotes
// stripped and interior double quotes kept verbatim; a run enclosed in
// double quotes keeps interior single quotes verbatim. Any other maximal
// run of non-whitespace characters is one token. There is no escape
// processing. A quote with no closing quote of the same kind is kept as a
// literal character. Empty input yields no tokens.
func Tokenize(s string) []string {
	var tokens []string
	runes := []rune(s)

	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		var b strings.Builder
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			c := runes[i]
			if c == '\'' || c == '"' {
				if end := closingQuote(runes, i+1, c); end >= 0 {
					b.WriteString(string(runes[i+1 : end]))
					i = end + 1
					continue
				}
			}
			b.WriteRune(c)
			i++
		}
		tokens = append(tokens, b.String())
	}

	return tokens
}

// closingQuote returns the index of the next occurrence of quote at or
// after from, or -1 when the quote is never closed.
func closingQuote(runes []rune, from int, quote rune) int {
	for j := from; j < len(runes); j++ {
		if runes[j] == quote {
			return j
		}
	}
	return -1
}

// HasFlagValue reports whether any token assigns a value to key, i.e. has
// the form "key=v" with a non-empty v. Used to let user-supplied arguments
// take precedence over computed defaults.
func HasFlagValue(tokens []string, key string) bool {
	prefix := key + "="
	for _, t := range tokens {
		if strings.HasPrefix(t, prefix) && len(t) > len(prefix) {
			return true
		}
	}
	return false
}
