package rematch

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestRangeSetContains(t *testing.T) {
	s := NewRangeSet(
		CharRange{Lo: 'a', Hi: 'f'},
		CharRange{Lo: '0', Hi: '9'},
		CharRange{Lo: 0x4E00, Hi: 0x9FFF}, // CJK unified ideographs
	)

	cases := []struct {
		cp   rune
		want bool
	}{
		{'a', true},
		{'f', true},
		{'g', false},
		{'0', true},
		{'9', true},
		{'/', false},
		{0x4E2D, true}, // 中
		{0xFF, false},
	}
	for _, c := range cases {
		assert.Equal(t, s.Contains(c.cp), c.want, "cp=%U", c.cp)
	}
}

func TestNewRangeSetSortsRanges(t *testing.T) {
	s := NewRangeSet(
		CharRange{Lo: 100, Hi: 200},
		CharRange{Lo: 0, Hi: 10},
		CharRange{Lo: 50, Hi: 60},
	)
	for i := 1; i < len(s.Ranges); i++ {
		assert.Assert(t, s.Ranges[i-1].Lo < s.Ranges[i].Lo)
	}
}

func TestIsWordChar(t *testing.T) {
	assert.Equal(t, isWordChar('a'), true)
	assert.Equal(t, isWordChar('Z'), true)
	assert.Equal(t, isWordChar('5'), true)
	assert.Equal(t, isWordChar('_'), true)
	assert.Equal(t, isWordChar(' '), false)
	assert.Equal(t, isWordChar('.'), false)
	assert.Equal(t, isWordChar(0x00E9), true) // é, a Unicode letter
}

func TestDefaultStaticSetsWordSet(t *testing.T) {
	sets := DefaultStaticSets()
	assert.Equal(t, len(sets), LastStaticSet)
	assert.Assert(t, sets[WordSet].Contains('a'))
	assert.Assert(t, !sets[WordSet].Contains(' '))
}
