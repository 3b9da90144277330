package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the reference work factor for password hashes.
const DefaultBcryptCost = 10

// dummyHashes holds one throwaway hash per work factor. Logins for an
// unknown email compare against the hash matching the configured cost, so
// they take as long as a wrong password.
var (
	dummyMu     sync.Mutex
	dummyHashes = map[int][]byte{}
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), effectiveCost(cost))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// VerifyPasswordDummy spends one bcrypt comparison at the given cost and
// always fails.
func VerifyPasswordDummy(plain string, cost int) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash(cost), []byte(plain))
	return false
}

// effectiveCost maps out-of-range costs to DefaultBcryptCost, the same way
// for real and dummy hashes.
func effectiveCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return DefaultBcryptCost
	}
	return cost
}

func dummyHash(cost int) []byte {
	cost = effectiveCost(cost)
	dummyMu.Lock()
	defer dummyMu.Unlock()
	if h, ok := dummyHashes[cost]; ok {
		return h
	}
	h, _ := bcrypt.GenerateFromPassword([]byte("no-such-user"), cost)
	dummyHashes[cost] = h
	return h
}
