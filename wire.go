package main

import "fmt"

// wireAlphabet is the single shared symbol table mapping wire indices to
// display characters: digits, then lowercase, then uppercase, then a fixed
// punctuation set. Index i in this string is the character for wire i.
// Both codec directions derive from this one table so they cannot drift apart.
const wireAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!@#$%^&*()-_=+[]{}<>?"

// NumWireChars is the number of wire indices the alphabet can express.
const NumWireChars = len(wireAlphabet)

// wireIndex is the reverse lookup, built from wireAlphabet at startup.
var wireIndex = func() map[byte]int {
	m := make(map[byte]int, NumWireChars)
	for i := 0; i < NumWireChars; i++ {
		m[wireAlphabet[i]] = i
	}
	return m
}()

// WireChar returns the display character for a wire index.
// Indices outside [0, NumWireChars) saturate to '0' rather than failing;
// callers needing strict validation should use WireCharStrict.
func WireChar(w int) byte {
	if w < 0 || w >= NumWireChars {
		return wireAlphabet[0]
	}
	return wireAlphabet[w]
}

// CharWire returns the wire index for a display character.
// Unrecognized characters decode as wire 0 so that partial or malformed
// input never errors out of a render pass.
func CharWire(c byte) int {
	return wireIndex[c]
}

// WireCharStrict is WireChar with range checking.
func WireCharStrict(w int) (byte, error) {
	if w < 0 || w >= NumWireChars {
		return 0, fmt.Errorf("wire %d outside alphabet range [0, %d)", w, NumWireChars)
	}
	return wireAlphabet[w], nil
}

// CharWireStrict is CharWire with alphabet membership checking.
func CharWireStrict(c byte) (int, error) {
	w, ok := wireIndex[c]
	if !ok {
		return 0, fmt.Errorf("character %q not in wire alphabet", c)
	}
	return w, nil
}
