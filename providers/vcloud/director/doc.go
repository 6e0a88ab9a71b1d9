// Package director binds the VMware vCloud Director 1.5 API: vApp templates,
// their metadata and virtual machines.
//
// Every operation is declared once in operations.go together with its status
// policy. The API types only build URIs and bodies; the dispatcher issues the
// request and resolves the response.
package director
