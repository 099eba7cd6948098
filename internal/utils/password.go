package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash from the given plaintext password.
//
// bcrypt embeds a per-call random salt, so hashing the same plaintext twice
// yields different stored values while both verify successfully against the
// original password. The work factor is bcrypt.DefaultCost, which keeps
// brute-forcing computationally expensive.
//
// Parameters:
//
//	plaintext - the password as submitted by the user
//
// Returns:
//
//	string - the bcrypt hash in its standard encoded form
//	error  - non-nil if the password exceeds bcrypt's length limit
//
// Example usage:
//
//	hash, err := utils.HashPassword("correct horse battery staple")
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the given bcrypt hash.
//
// The comparison is performed by bcrypt itself and is safe against timing
// attacks. A malformed or truncated hash is never a panic or an error for
// the caller: the function simply returns false.
//
// Example usage:
//
//	if !utils.VerifyPassword(submitted, user.PasswordHash) {
//	    // reject credentials
//	}
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// dummyPasswordHash is a valid bcrypt hash of a random throwaway value.
// It exists solely so that authentication can burn a comparable amount of
// CPU time when the looked-up user does not exist.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BurnPasswordCheck performs a bcrypt comparison against a fixed dummy hash
// and discards the result. Called on the "user not found" path of
// authentication so its duration is close to a real password check,
// narrowing the timing side channel that would otherwise reveal whether an
// email is registered.
func BurnPasswordCheck(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(plaintext))
}
