package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammar_Matches(t *testing.T) {
	g := New()

	t.Run("accepts well-formed artifacts", func(t *testing.T) {
		artifacts := []string{
			`signature="dGVzdA=="`,
			`signature='dGVzdA=='`,
			`keyId="test",algorithm="rsa-sha256",signature="aGVsbG8rL3dvcmxk"`,
			`Signature="QUJDRA=="`,
			`SIGNATURE="QUJDRA=="`,
		}
		for _, a := range artifacts {
			assert.True(t, g.Matches(a), "expected match: %s", a)
		}
	})

	t.Run("rejects malformed artifacts", func(t *testing.T) {
		artifacts := []string{
			"",
			`signature=`,
			`signature=""`,
			`signature=dGVzdA==`,
			`signature="has spaces"`,
			`signature="bad!chars"`,
			`sig="dGVzdA=="`,
		}
		for _, a := range artifacts {
			assert.False(t, g.Matches(a), "expected no match: %s", a)
		}
	})
}
