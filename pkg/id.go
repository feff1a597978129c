package pkg

import (
	"crypto/rand"
	"math/big"
)

// idAlphabet intentionally leaves out look-alike characters (0/O, 1/l).
const idAlphabet = "abcdefghijkmnopqrstuvwxyz23456789"

const idLength = 24

// NewID returns a collision-resistant random identifier, generated
// client-side (i.e. by this process, never by the database). 24 chars
// over a 33-char alphabet gives ~120 bits of entropy.
func NewID() (string, error) {
	id := make([]byte, idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range id {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		id[i] = idAlphabet[n.Int64()]
	}
	return BytesToString(id), nil
}
