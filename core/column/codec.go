package column

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAddress is returned when a column address is not a sequence of letters.
var ErrInvalidAddress = errors.New("invalid column address")

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxDecodable bounds Decode so the accumulator never overflows an int.
const maxDecodable = 12

// MaxIndex is the largest index with an address, "ZZZZZZZZZZZZ".
var MaxIndex = func() int {
	n := 0
	for range maxDecodable {
		n = n*26 + 26
	}
	return n - 1
}()

// Encode returns the spreadsheet letters for a zero-based column index.
// Indices outside [0, MaxIndex] have no address that Decode accepts and
// encode to the empty string.
func Encode(index int) string {
	if index < 0 || index > MaxIndex {
		return ""
	}

	var buf [maxDecodable]byte
	pos := len(buf)
	for index >= 0 {
		pos--
		buf[pos] = alphabet[index%26]
		index = index/26 - 1
	}
	return string(buf[pos:])
}

// Decode returns the zero-based column index for spreadsheet letters.
// Lowercase letters are accepted.
func Decode(letters string) (int, error) {
	if letters == "" || len(letters) > maxDecodable {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, letters)
	}

	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, letters)
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, nil
}

// Letters returns the addresses of the first width columns, in order.
func Letters(width int) []string {
	if width <= 0 {
		return nil
	}
	out := make([]string, width)
	for i := range out {
		out[i] = Encode(i)
	}
	return out
}

// Resolve decodes letters and checks the result against a table width.
// Anything that does not address an existing column resolves to 0.
func Resolve(letters string, width int) int {
	idx, err := Decode(strings.TrimSpace(letters))
	if err != nil || idx >= width {
		return 0
	}
	return idx
}

// Default picks the letters a dependent selector should start with: the
// preferred letters when they address a column of a table with the given
// width, otherwise "A".
func Default(preferred string, width int) string {
	idx, err := Decode(strings.TrimSpace(preferred))
	if err != nil || idx >= width {
		return Encode(0)
	}
	return Encode(idx)
}
