package extract

import "strings"

// DefaultCarrierPrefix is the constant 8-character prefix shared by every
// tracking number this report produces ("1Z" + the shipper account).
const DefaultCarrierPrefix = "1ZGW0159"

// DefaultConfusables maps letters the report font gets misread into the
// digits they stand for in a tracking suffix.
var DefaultConfusables = map[rune]rune{
	'O': '0',
	'I': '1',
	'l': '1',
}

// Rebuilder reconstructs a canonical tracking identifier from a raw matched
// token. The prefix and substitution set are configuration so the tool can be
// retargeted to a different shipper account without touching the extractor.
type Rebuilder struct {
	prefix      string
	confusables map[rune]rune
}

func NewRebuilder(prefix string, confusables map[rune]rune) *Rebuilder {
	if prefix == "" {
		prefix = DefaultCarrierPrefix
	}
	if confusables == nil {
		confusables = DefaultConfusables
	}
	return &Rebuilder{prefix: prefix, confusables: confusables}
}

// Rebuild takes the raw token, drops its first 8 characters (the prefix
// region, which is known and is replaced wholesale), corrects digit
// confusables in the remainder, and returns prefix + the first 10 corrected
// suffix characters. When the suffix is short the result is short; callers
// discard anything under 18 characters.
func (b *Rebuilder) Rebuild(token string) string {
	suffix := ""
	if len(token) > 8 {
		suffix = token[8:]
	}
	suffix = strings.Map(func(r rune) rune {
		if sub, ok := b.confusables[r]; ok {
			return sub
		}
		return r
	}, suffix)
	if len(suffix) > 10 {
		suffix = suffix[:10]
	}
	return b.prefix + suffix
}

// CanonicalLength is the length every emitted tracking identifier must have.
func (b *Rebuilder) CanonicalLength() int {
	return len(b.prefix) + 10
}
