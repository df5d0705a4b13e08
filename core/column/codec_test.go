package column

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownValues(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{16383, "XFD"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.index))
		})
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{name: "Negative", index: -1, want: ""},
		{name: "Max", index: MaxIndex, want: "ZZZZZZZZZZZZ"},
		{name: "PastMax", index: MaxIndex + 1, want: ""},
		{name: "MaxInt", index: math.MaxInt, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.index))
		})
	}

	got, err := Decode(Encode(MaxIndex))
	require.NoError(t, err)
	assert.Equal(t, MaxIndex, got)
}

func TestDecode_KnownValues(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 0},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"ZZ", 701},
		{"AAA", 702},
		{"xfd", 16383},
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := Decode(tt.letters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, in := range []string{"", "A1", "1", "-", "Ä", "AAAAAAAAAAAAA"} {
		t.Run(in, func(t *testing.T) {
			_, err := Decode(in)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 1_000_000; i++ {
		got, err := Decode(Encode(i))
		if err != nil || got != i {
			t.Fatalf("round trip of %d: got %d, err %v", i, got, err)
		}
	}
}

func TestLetters(t *testing.T) {
	assert.Nil(t, Letters(0))
	assert.Equal(t, []string{"A", "B", "C"}, Letters(3))
	assert.Equal(t, "AB", Letters(28)[27])
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		letters string
		width   int
		want    int
	}{
		{"InRange", "B", 3, 1},
		{"MultiLetter", "AB", 30, 27},
		{"OutOfRange", "D", 3, 0},
		{"Invalid", "1", 3, 0},
		{"Empty", "", 3, 0},
		{"Padded", " c ", 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.letters, tt.width))
		})
	}
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "C", Default("C", 5))
	assert.Equal(t, "A", Default("F", 5))
	assert.Equal(t, "A", Default("", 5))
	assert.Equal(t, "AA", Default("aa", 27))
}
