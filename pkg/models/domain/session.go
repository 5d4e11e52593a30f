package domain

// Credential is the bearer token proving an authenticated session, together
// with the username that obtained it.
type Credential struct {
	Username string
	Token    string
}
