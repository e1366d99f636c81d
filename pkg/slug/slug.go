package slug

import (
	"crypto/rand"
	"strings"
	"unicode"
)

// Option configures slug generation.
type Option func(*options)

type options struct {
	maxLength int
	lowercase bool
	suffixLen int
}

// MaxLength caps the slug at n runes. Truncation never leaves a trailing
// hyphen. Zero means unlimited.
func MaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// Lowercase controls case folding of the result. On by default.
func Lowercase(enabled bool) Option {
	return func(o *options) { o.lowercase = enabled }
}

// WithSuffix appends a hyphen and a random alphanumeric tag of the given
// length, for retrying past uniqueness collisions. The tag always fits
// within MaxLength, shortening the base part when it has to.
func WithSuffix(length int) Option {
	return func(o *options) { o.suffixLen = length }
}

// Make turns free text into a URL-safe slug: letters and digits pass
// through, common Latin diacritics fold to ASCII, and every other run of
// characters collapses into a single hyphen.
//
//	Make("Maison Lumière & Co.")  // "maison-lumiere-co"
func Make(s string, opts ...Option) string {
	o := options{lowercase: true}
	for _, opt := range opts {
		opt(&o)
	}

	out := build(s, o.lowercase)
	if o.maxLength > 0 {
		out = clip(out, o.maxLength)
	}
	if o.suffixLen > 0 {
		out = attachSuffix(out, o)
	}
	return out
}

// build folds and filters the input in one pass. A separator is only
// written once the next keepable rune arrives, so the result never starts
// or ends with a hyphen and never doubles one up.
func build(s string, lower bool) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	for _, r := range s {
		folded, keep := fold(r)
		if !keep {
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		if lower {
			folded = unicode.ToLower(folded)
		}
		b.WriteRune(folded)
	}
	return b.String()
}

// fold reports whether r belongs in a slug, mapping diacritics to their
// ASCII base letter. Anything it rejects becomes separator material.
func fold(r rune) (rune, bool) {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r, true
	}
	if base, ok := latinFold[r]; ok {
		return base, true
	}
	return 0, false
}

// clip truncates to max runes and drops any hyphen the cut exposed.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max])
	}
	return strings.TrimRight(s, "-")
}

func attachSuffix(s string, o options) string {
	n := o.suffixLen
	if o.maxLength > 0 && n > o.maxLength {
		n = o.maxLength
	}
	tag := randomTag(n, o.lowercase)

	if o.maxLength > 0 {
		room := o.maxLength - n - 1
		if room <= 0 {
			return tag
		}
		s = clip(s, room)
	}
	if s == "" {
		return tag
	}
	return s + "-" + tag
}

const (
	tagAlphabetLower = "abcdefghijklmnopqrstuvwxyz0123456789"
	tagAlphabetMixed = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// randomTag draws length characters from the alphabet using crypto/rand.
// If the system randomness source fails it degrades to a fixed pattern
// rather than failing slug generation.
func randomTag(length int, lower bool) string {
	alphabet := tagAlphabetMixed
	if lower {
		alphabet = tagAlphabetLower
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = alphabet[i%len(alphabet)]
		}
		return string(buf)
	}
	for i, v := range buf {
		buf[i] = alphabet[int(v)%len(alphabet)]
	}
	return string(buf)
}

// latinFold maps accented Latin letters to their ASCII base. It covers the
// European ranges shop names actually use; anything outside it collapses
// into a separator instead.
var latinFold = map[rune]rune{
	'à': 'a', 'À': 'A', 'á': 'a', 'Á': 'A', 'â': 'a', 'Â': 'A',
	'ã': 'a', 'Ã': 'A', 'ä': 'a', 'Ä': 'A', 'å': 'a', 'Å': 'A',
	'ā': 'a', 'Ā': 'A', 'ă': 'a', 'Ă': 'A', 'ą': 'a', 'Ą': 'A',
	'ç': 'c', 'Ç': 'C', 'ć': 'c', 'Ć': 'C', 'č': 'c', 'Č': 'C',
	'ď': 'd', 'Ď': 'D', 'đ': 'd', 'Đ': 'D',
	'è': 'e', 'È': 'E', 'é': 'e', 'É': 'E', 'ê': 'e', 'Ê': 'E',
	'ë': 'e', 'Ë': 'E', 'ē': 'e', 'Ē': 'E', 'ė': 'e', 'Ė': 'E',
	'ę': 'e', 'Ę': 'E', 'ě': 'e', 'Ě': 'E',
	'ì': 'i', 'Ì': 'I', 'í': 'i', 'Í': 'I', 'î': 'i', 'Î': 'I',
	'ï': 'i', 'Ï': 'I', 'ī': 'i', 'Ī': 'I', 'į': 'i', 'Į': 'I',
	'ł': 'l', 'Ł': 'L',
	'ñ': 'n', 'Ñ': 'N', 'ń': 'n', 'Ń': 'N', 'ň': 'n', 'Ň': 'N',
	'ò': 'o', 'Ò': 'O', 'ó': 'o', 'Ó': 'O', 'ô': 'o', 'Ô': 'O',
	'õ': 'o', 'Õ': 'O', 'ö': 'o', 'Ö': 'O', 'ø': 'o', 'Ø': 'O',
	'ō': 'o', 'Ō': 'O',
	'ř': 'r', 'Ř': 'R',
	'ś': 's', 'Ś': 'S', 'š': 's', 'Š': 'S', 'ș': 's', 'Ș': 'S',
	'ť': 't', 'Ť': 'T', 'ț': 't', 'Ț': 'T',
	'ù': 'u', 'Ù': 'U', 'ú': 'u', 'Ú': 'U', 'û': 'u', 'Û': 'U',
	'ü': 'u', 'Ü': 'U', 'ū': 'u', 'Ū': 'U', 'ů': 'u', 'Ů': 'U',
	'ų': 'u', 'Ų': 'U',
	'ý': 'y', 'Ý': 'Y', 'ÿ': 'y', 'Ÿ': 'Y',
	'ź': 'z', 'Ź': 'Z', 'ž': 'z', 'Ž': 'Z', 'ż': 'z', 'Ż': 'Z',
	'æ': 'a', 'Æ': 'A', 'œ': 'o', 'Œ': 'O', 'ß': 's',
}
