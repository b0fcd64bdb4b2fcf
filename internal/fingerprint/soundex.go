package fingerprint

// soundexCodes maps upper-case letters to their American Soundex digit.
// Vowels and Y map to 0, H and W are absent.
var soundexCodes = map[byte]byte{
	'A': '0', 'E': '0', 'I': '0', 'O': '0', 'U': '0', 'Y': '0',
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// Soundex returns the four character American Soundex code of a normalized name.
// Non-letters are ignored; a name without letters encodes to "".
func Soundex(name string) string {
	letters := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := []byte{letters[0]}
	last := soundexCodes[letters[0]]
	for _, c := range letters[1:] {
		if len(code) == 4 {
			break
		}
		if c == 'H' || c == 'W' {
			// H and W do not separate letters with the same code
			continue
		}
		digit := soundexCodes[c]
		if digit != '0' && digit != last {
			code = append(code, digit)
		}
		last = digit
	}

	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}
