package phonetic

import "strings"

// KeyLen is the fixed length of a phonetic key
const KeyLen = 4

// code classes for American Soundex, 0 marks a separator vowel
var codes = [26]byte{
	'a' - 'a': 0, 'b' - 'a': '1', 'c' - 'a': '2', 'd' - 'a': '3',
	'e' - 'a': 0, 'f' - 'a': '1', 'g' - 'a': '2', 'h' - 'a': 0,
	'i' - 'a': 0, 'j' - 'a': '2', 'k' - 'a': '2', 'l' - 'a': '4',
	'm' - 'a': '5', 'n' - 'a': '5', 'o' - 'a': 0, 'p' - 'a': '1',
	'q' - 'a': '2', 'r' - 'a': '6', 's' - 'a': '2', 't' - 'a': '3',
	'u' - 'a': 0, 'v' - 'a': '1', 'w' - 'a': 0, 'x' - 'a': '2',
	'y' - 'a': 0, 'z' - 'a': '2',
}

// Key returns the 4 character American Soundex key of name.
// Names with no latin letters yield ""
func Key(name string) string {
	n := Normalize(name)

	letters := make([]byte, 0, len(n))
	for i := 0; i < len(n); i++ {
		if c := n[i]; c >= 'a' && c <= 'z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(KeyLen)
	b.WriteByte(letters[0] - 'a' + 'A')
	last := codes[letters[0]-'a']

	for _, c := range letters[1:] {
		if b.Len() == KeyLen {
			break
		}
		// h and w are transparent, they neither emit nor separate
		if c == 'h' || c == 'w' {
			continue
		}
		d := codes[c-'a']
		if d == 0 {
			last = 0
			continue
		}
		if d != last {
			b.WriteByte(d)
		}
		last = d
	}
	for b.Len() < KeyLen {
		b.WriteByte('0')
	}
	return b.String()
}

// Difference counts the positions (0..4) at which the keys of a and b agree.
// 4 means the names sound alike, 0 means nothing in common or no key
func Difference(a, b string) int {
	return keyDifference(Key(a), Key(b))
}

func keyDifference(ka, kb string) int {
	if ka == "" || kb == "" {
		return 0
	}
	n := 0
	for i := 0; i < KeyLen && i < len(ka) && i < len(kb); i++ {
		if ka[i] == kb[i] {
			n++
		}
	}
	return n
}
