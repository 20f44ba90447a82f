// internal/common/ident/ident.go
package ident

import (
	"crypto/rand"
)

// alphabet is URL-safe and unambiguous enough for IDs that end up in
// shared links.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// BriefIDLength is the length of generated brief identifiers.
const BriefIDLength = 10

// NewBriefID returns a random URL-safe identifier for a persisted brief.
func NewBriefID() string {
	return generate(BriefIDLength)
}

// maxUnbiased is the largest byte value that maps onto the alphabet
// without bias: 248 = 4 * 62.
const maxUnbiased = byte(256 - 256%len(alphabet))

func generate(n int) string {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// nothing sensible to do but panic.
			panic("ident: entropy source unavailable: " + err.Error())
		}
		for _, b := range buf {
			if b >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out)
}
