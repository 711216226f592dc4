package extract

import "regexp"

// OCR of the report's condensed numerals misreads the digit pair "01" as a
// Hangul syllable or as CJK corner brackets, depending on surrounding ink.
// These are the only substitutions this report format needs; anything more
// aggressive risks corrupting reference text.
var (
	reHangul01  = regexp.MustCompile(`이\s*`)
	reBracket01 = regexp.MustCompile(`[「」]`)
)

// NormalizeLine rewrites known OCR artifacts in a single line into the
// characters the printer actually produced. Pure and idempotent: a line with
// no artifact glyphs comes back unchanged.
func NormalizeLine(line string) string {
	line = reHangul01.ReplaceAllString(line, "01")
	line = reBracket01.ReplaceAllString(line, "01")
	return line
}
