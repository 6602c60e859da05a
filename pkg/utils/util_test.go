package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseID(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, UniqueIDs([]uint64{3, 1, 3, 2, 1}))
	assert.Empty(t, UniqueIDs(nil))
}

func TestPanicTrace(t *testing.T) {
	trace := PanicTrace("boom")
	assert.Contains(t, trace, "boom\n")
}
