package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Generate draws a sequence with a length uniform in [MinLength, MaxLength]
// and symbols uniform over the alphabet, repetition allowed.
func Generate(r *rand.Rand, s Settings) []Symbol {
	n := s.MinLength + r.IntN(s.MaxLength-s.MinLength+1)
	seq := make([]Symbol, n)
	for i := range seq {
		seq[i] = Symbol(r.IntN(s.AlphabetSize) + 1)
	}
	return seq
}

// checkSequence validates a caller-supplied sequence against s.
func checkSequence(seq []Symbol, s Settings) error {
	if len(seq) < s.MinLength || len(seq) > s.MaxLength {
		return fmt.Errorf("%w: sequence length %d not in [%d,%d]",
			ErrInvalidConfiguration, len(seq), s.MinLength, s.MaxLength)
	}
	for i, sym := range seq {
		if !s.valid(sym) {
			return fmt.Errorf("%w: sequence[%d] = %d outside alphabet", ErrInvalidConfiguration, i, sym)
		}
	}
	return nil
}

func (s Settings) valid(sym Symbol) bool {
	return sym >= 1 && int(sym) <= s.AlphabetSize
}

// NewRand returns a PCG generator. seed 0 draws a seed from crypto/rand.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		var b [8]byte
		_, _ = crand.Read(b[:])
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
