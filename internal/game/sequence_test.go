package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	s := DefaultSettings()
	r := NewRand(42)
	lengths := map[int]int{}
	symbols := map[Symbol]int{}
	for i := 0; i < 2000; i++ {
		seq := Generate(r, s)
		require.GreaterOrEqual(t, len(seq), 3)
		require.LessOrEqual(t, len(seq), 6)
		lengths[len(seq)]++
		for _, sym := range seq {
			require.True(t, s.valid(sym), "symbol %d", sym)
			symbols[sym]++
		}
	}
	assert.Len(t, lengths, 4, "every length in [3,6] shows up")
	assert.Len(t, symbols, 4, "every symbol shows up")
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	s := DefaultSettings()
	a, b := NewRand(99), NewRand(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, Generate(a, s), Generate(b, s))
	}
}

func TestGenerate_CustomRange(t *testing.T) {
	s := DefaultSettings()
	s.AlphabetSize, s.MinLength, s.MaxLength = 2, 5, 5
	seq := Generate(NewRand(1), s)
	assert.Len(t, seq, 5)
	for _, sym := range seq {
		assert.Contains(t, []Symbol{1, 2}, sym)
	}
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	cases := map[string]func(*Settings){
		"alphabet too small": func(s *Settings) { s.AlphabetSize = 1 },
		"alphabet too large": func(s *Settings) { s.AlphabetSize = 10 },
		"min zero":           func(s *Settings) { s.MinLength = 0 },
		"max below min":      func(s *Settings) { s.MaxLength = 2 },
		"zero tick":          func(s *Settings) { s.Tick = 0 },
		"negative settle":    func(s *Settings) { s.SettleDelay = -1 },
		"highlight too long": func(s *Settings) { s.Highlight = s.SequenceInterval + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := DefaultSettings()
			mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestParseSymbol(t *testing.T) {
	for in, want := range map[string]Symbol{"1": Blue, "2": Red, " 3 ": Green, "4": Yellow, "yellow": Yellow, "BLUE": Blue, "7": 7} {
		got, err := ParseSymbol(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"0", "10", "purple", ""} {
		_, err := ParseSymbol(in)
		assert.Error(t, err, in)
	}
}

func TestSymbol_Color(t *testing.T) {
	assert.Equal(t, "blue", Blue.Color())
	assert.Equal(t, "red", Red.Color())
	assert.Equal(t, "green", Green.Color())
	assert.Equal(t, "yellow", Yellow.Color())
	assert.Equal(t, "none", NoSymbol.Color())
	assert.Equal(t, "symbol-6", Symbol(6).Color())
}
