// Package compute resolves the login credentials used to reach provisioned
// nodes: stored per-node credentials, image defaults and per-provider OS
// family defaults.
package compute
