// Package grammar defines the format contract a signature artifact must
// satisfy: a parameter literally named "signature" whose value is a quoted
// string of base64 alphabet characters.
//
// This is a pure format check. It says nothing about cryptographic
// correctness, only encodability and transport-safety of the artifact.
package grammar

import "regexp"

// artifactPattern matches a signature parameter with a quoted base64 value.
// The parameter name is case-insensitive; the value accepts the base64
// alphabet (letters, digits, '+', '/') plus '=' padding.
var artifactPattern = regexp.MustCompile(`(?i)signature=["'][a-z0-9+/=]+["']`)

// Grammar is the stateless artifact format checker.
type Grammar struct {
	re *regexp.Regexp
}

// New returns the signature artifact grammar.
func New() *Grammar {
	return &Grammar{re: artifactPattern}
}

// Matches reports whether the artifact contains a well-formed signature
// parameter.
func (g *Grammar) Matches(artifact string) bool {
	return g.re.MatchString(artifact)
}
