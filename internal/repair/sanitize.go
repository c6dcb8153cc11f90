package repair

import "strings"

// Characters the voice provider's TTS engine reads aloud or chokes on.
var speechUnsafe = map[rune]bool{
	'*': true, '/': true, '\\': true, '`': true, '#': true,
	'_': true, '~': true, '<': true, '>': true, '|': true,
	'{': true, '}': true, '[': true, ']': true,
}

// SanitizeForSpeech strips markup punctuation unsuitable for
// text-to-speech and collapses runs of whitespace.
func SanitizeForSpeech(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if speechUnsafe[r] {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
