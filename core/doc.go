// Package core contains the provider-neutral cloud client contracts: the
// session model returned by credential authenticators, the single-request
// operation dispatcher, the per-operation status policy table and the error
// taxonomy. Provider bindings and transports depend on this package; core must
// not depend on provider-specific or transport-specific adapters.
package core
