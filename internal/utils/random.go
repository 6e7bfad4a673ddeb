package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomAlphanumeric returns a random string drawn from [a-zA-Z0-9].
func RandomAlphanumeric(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphanumeric[secureRandomInt(len(alphanumeric))]
	}
	return string(b)
}

// RandomNumericCode returns a fixed-width numeric code uniformly drawn
// from [10^(digits-1), 10^digits - 1], so the leading digit is never zero.
func RandomNumericCode(digits int) string {
	low := big.NewInt(1)
	for i := 1; i < digits; i++ {
		low.Mul(low, big.NewInt(10))
	}
	// span = 9 * low, e.g. [100000, 999999] for 6 digits
	span := new(big.Int).Mul(low, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		panic(err)
	}
	return n.Add(n, low).String()
}

func secureRandomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}
	return int(n.Int64())
}
