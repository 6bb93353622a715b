package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// GenerateRandomToken returns a 256-bit random value encoded as hex. It is
// used for shared verification tokens and challenge nonces.
func GenerateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return hex.EncodeToString(b)
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func GenerateRandomAlphabet(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[RandIntn(len(alphabet))]
	}
	return string(b)
}

// SignHMAC computes a hex-encoded HMAC-SHA256 over the given payload parts
// joined with dots. Both sides of the challenge-response protocol must build
// the payload from the same parts in the same order.
func SignHMAC(secret string, parts ...string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(strings.Join(parts, ".")))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHMAC reports whether signature matches the expected HMAC of the
// payload parts. The comparison is constant time.
func VerifyHMAC(secret, signature string, parts ...string) bool {
	expected := SignHMAC(secret, parts...)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
