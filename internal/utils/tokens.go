package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Opaque secrets are prefixed so a leaked token can be recognised for what
// it is (and revoked) without guessing.
const (
	PrefixWorkerToken       = "dwt-"
	PrefixRegistrationToken = "drt-"
	PrefixCapabilityToken   = "dct-"

	tokenBytes = 32
)

func newToken(prefix string) string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the host is broken; nothing sane to do
		panic(err)
	}
	return prefix + hex.EncodeToString(buf)
}

// NewWorkerToken mints a long lived worker secret.
func NewWorkerToken() string {
	return newToken(PrefixWorkerToken)
}

// NewRegistrationToken mints a pre-shared registration secret.
func NewRegistrationToken() string {
	return newToken(PrefixRegistrationToken)
}

// NewCapabilityToken mints an ephemeral, per-lease capability secret.
func NewCapabilityToken() string {
	return newToken(PrefixCapabilityToken)
}

// IsWorkerToken reports whether the given secret looks like a worker token.
func IsWorkerToken(s string) bool {
	return strings.HasPrefix(s, PrefixWorkerToken)
}
