// Package keystone implements the OpenStack Keystone v2.0 token API: the
// request payloads for access-key and password credentials, the access
// document returned on success, and its conversion into core.Access.
package keystone
