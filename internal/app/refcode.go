package app

import (
	"fmt"
	"math/rand/v2"
)

const refLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newReferenceCode produces a payment reference in the shape
// "QDH1234X56": three letters, four digits, one letter, two digits.
// The code is a display string only; nothing validates it downstream,
// so a non-cryptographic source is fine.
func newReferenceCode() string {
	return fmt.Sprintf("%c%c%c%04d%c%02d",
		refLetters[rand.IntN(len(refLetters))],
		refLetters[rand.IntN(len(refLetters))],
		refLetters[rand.IntN(len(refLetters))],
		1000+rand.IntN(9000),
		refLetters[rand.IntN(len(refLetters))],
		10+rand.IntN(90),
	)
}
