package order

import "math/rand"

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 10
)

// NewCode returns a candidate order code: 10 characters drawn uniformly
// from A-Z and 0-9. Uniqueness is NOT guaranteed here; the database has a
// unique index on the code and Checkout retries on conflict.
func NewCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
