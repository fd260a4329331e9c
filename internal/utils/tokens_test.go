package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenPrefixes(t *testing.T) {
	cases := []struct {
		Name   string
		Mint   func() string
		Prefix string
	}{
		{Name: "worker", Mint: NewWorkerToken, Prefix: PrefixWorkerToken},
		{Name: "registration", Mint: NewRegistrationToken, Prefix: PrefixRegistrationToken},
		{Name: "capability", Mint: NewCapabilityToken, Prefix: PrefixCapabilityToken},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			tok := c.Mint()

			assert.Contains(t, tok, c.Prefix)
			assert.Equal(t, len(c.Prefix)+tokenBytes*2, len(tok))
			assert.NotEqual(t, tok, c.Mint())
		})
	}
}

func TestIsWorkerToken(t *testing.T) {
	assert.True(t, IsWorkerToken(NewWorkerToken()))
	assert.False(t, IsWorkerToken(NewCapabilityToken()))
	assert.False(t, IsWorkerToken(""))
}

func TestNewID(t *testing.T) {
	id := NewID()

	assert.True(t, IsValidID(id))
	assert.NotEqual(t, id, NewID())
	assert.False(t, IsValidID("not-an-id"))
}
