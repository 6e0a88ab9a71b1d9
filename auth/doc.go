// Package auth holds the credential authenticators shipped with go-clouds.
//
// Every authenticator parses the composite identity first, issues exactly one
// login request and returns a core.Access. Failures surface as a single
// *core.AuthenticationError with the underlying cause preserved.
package auth
