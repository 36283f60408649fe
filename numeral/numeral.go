// Package numeral implements a bijective variable-length base-64 numeral
// system.
//
// The non-negative integers are split into length bands: band L holds the
// 64^L integers starting at 1+64+...+64^(L-1) and maps onto every string of
// exactly L symbols. Every integer therefore has exactly one string and every
// string over the alphabet decodes to exactly one integer. Encode(0) is "".
package numeral

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// Radix is the number of symbols in an Alphabet.
	Radix = 64
	bits  = 6
	mask  = Radix - 1
)

// DefaultSymbols is the symbol order of Default. The digit zero is placed
// last so it is never the leading symbol of a short token.
const DefaultSymbols = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_0"

// Default is the URL- and filename-safe alphabet used when none is given.
var Default = MustAlphabet(DefaultSymbols)

// ErrInvalidSymbol is matched by every *SymbolError.
var ErrInvalidSymbol = errors.New("numeral: invalid symbol")

// ErrInvalidAlphabet reports a symbol set that is not 64 distinct ASCII bytes.
var ErrInvalidAlphabet = errors.New("numeral: invalid alphabet")

// SymbolError reports a character outside the alphabet.
type SymbolError struct {
	Symbol rune
	Offset int // byte offset in the decoded string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("numeral: invalid symbol %q at offset %d", e.Symbol, e.Offset)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }

// Alphabet is an ordered set of 64 symbols; symbol i has digit value i.
// The zero value is not usable; build one with NewAlphabet.
type Alphabet struct {
	symbols string
	values  [256]int8
}

// NewAlphabet validates symbols and returns the Alphabet they define.
func NewAlphabet(symbols string) (Alphabet, error) {
	var a Alphabet
	if len(symbols) != Radix {
		return a, fmt.Errorf("%w: want %d symbols, got %d", ErrInvalidAlphabet, Radix, len(symbols))
	}
	for i := range a.values {
		a.values[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if c >= 0x80 {
			return Alphabet{}, fmt.Errorf("%w: non-ASCII byte at %d", ErrInvalidAlphabet, i)
		}
		if a.values[c] >= 0 {
			return Alphabet{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, c)
		}
		a.values[c] = int8(i)
	}
	a.symbols = symbols
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
func MustAlphabet(symbols string) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Symbols returns the alphabet in digit order.
func (a Alphabet) Symbols() string { return a.symbols }

// Encode returns the unique string for n using the Default alphabet.
func Encode(n *big.Int) (string, error) { return Default.Encode(n) }

// Decode returns the integer for s using the Default alphabet.
func Decode(s string) (*big.Int, error) { return Default.Decode(s) }

// Encode returns the unique string for n. n must be non-negative.
func (a Alphabet) Encode(n *big.Int) (string, error) {
	if n.Sign() < 0 {
		return "", fmt.Errorf("numeral: cannot encode negative integer %s", n)
	}
	if a.symbols == "" {
		return "", fmt.Errorf("%w: zero value", ErrInvalidAlphabet)
	}
	l, off := band(n)
	r := new(big.Int).Sub(n, off)
	m := big.NewInt(mask)
	d := new(big.Int)
	out := make([]byte, l)
	for i := l - 1; i >= 0; i-- {
		out[i] = a.symbols[d.And(r, m).Uint64()]
		r.Rsh(r, bits)
	}
	return string(out), nil
}

// Decode reads s as a big-endian numeral and adds the offset of its band.
func (a Alphabet) Decode(s string) (*big.Int, error) {
	if a.symbols == "" {
		return nil, fmt.Errorf("%w: zero value", ErrInvalidAlphabet)
	}
	r := new(big.Int)
	d := new(big.Int)
	for i, c := range s {
		if c >= 0x80 || a.values[c] < 0 {
			return nil, &SymbolError{Symbol: c, Offset: i}
		}
		r.Lsh(r, bits)
		r.Or(r, d.SetInt64(int64(a.values[c])))
	}
	return r.Add(r, Offset(len(s))), nil
}

// Offset returns the first integer of band l: (64^l - 1) / 63.
func Offset(l int) *big.Int {
	if l <= 0 {
		return new(big.Int)
	}
	o := new(big.Int).Lsh(big.NewInt(1), uint(l*bits))
	o.Sub(o, big.NewInt(1))
	return o.Quo(o, big.NewInt(mask))
}

// Len returns the number of symbols Encode produces for n.
func Len(n *big.Int) int {
	l, _ := band(n)
	return l
}

// band finds the length l whose band contains n and the band's offset.
func band(n *big.Int) (int, *big.Int) {
	off := new(big.Int)
	size := big.NewInt(1)
	next := new(big.Int)
	l := 0
	for {
		next.Add(off, size)
		if n.Cmp(next) < 0 {
			return l, off
		}
		off.Set(next)
		size.Lsh(size, bits)
		l++
	}
}
