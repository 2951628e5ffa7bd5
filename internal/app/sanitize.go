package app

import "strings"

// asciiReplacements maps Unicode characters the PDF core fonts cannot show
// to close ASCII equivalents.
var asciiReplacements = map[rune]string{
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'–': "-",   // en dash
	'—': "--",  // em dash
	'…': "...", // ellipsis
	'´': "'",   // acute accent
	'°': " degrees",
	'µ': "u",   // micro sign
	'·': "*",   // middle dot
	'©': "(c)", // copyright
	'®': "(R)", // registered trademark
	'™': "TM",
}

// CleanText replaces characters the Latin-1 core fonts cannot represent.
// Known typography gets a transliteration, anything else outside Latin-1
// becomes '?'. Deterministic so repeated runs produce identical reports.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := asciiReplacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r > 0xff {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
