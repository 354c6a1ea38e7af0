// Package domain defines the core domain models for SkyWalker.
package domain

// Token is a server-issued credential together with the server it
// authenticates against. The value is opaque and never parsed.
//
// Token has no setters; a new login yields a new Token.
type Token struct {
	serverURL string
	value     string
}

// NewToken creates a token for serverURL.
func NewToken(serverURL, value string) Token {
	return Token{serverURL: serverURL, value: value}
}

// ServerURL returns the base address the token was issued by.
func (t Token) ServerURL() string {
	return t.serverURL
}

// Value returns the raw token string.
func (t Token) Value() string {
	return t.value
}

// IsZero reports whether the token carries no value.
func (t Token) IsZero() bool {
	return t.value == "" && t.serverURL == ""
}

// BearerHeader returns the Authorization header value for the token.
func (t Token) BearerHeader() string {
	return "Bearer " + t.value
}

// String never reveals the token value.
func (t Token) String() string {
	if t.IsZero() {
		return "Token(none)"
	}
	return "Token(" + t.serverURL + ")"
}
