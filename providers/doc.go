// Package providers contains the provider bindings shipped with go-clouds and
// the shared Keystone provider used by the OpenStack derived bindings.
package providers
