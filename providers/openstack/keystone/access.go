package keystone

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clouds/core"
)

// ToCoreAccess converts a Keystone access document into a core.Access that
// carries the token in X-Auth-Token.
func ToCoreAccess(providerID string, access *Access) (core.Access, error) {
	if access == nil {
		return core.Access{}, fmt.Errorf("keystone: access document is nil")
	}
	input := core.AccessInput{
		ProviderID:  providerID,
		Token:       access.Token.ID,
		TokenHeader: core.DefaultTokenHeader,
		UserID:      access.User.ID,
		UserName:    access.User.Name,
		Metadata:    map[string]any{},
	}
	if expiresAt, ok := access.Token.ExpiresAt(); ok {
		input.ExpiresAt = &expiresAt
	} else if raw := strings.TrimSpace(access.Token.Expires); raw != "" {
		input.Metadata["token_expires_raw"] = raw
	}
	if tenant := access.Token.Tenant; tenant != nil {
		input.TenantID = tenant.ID
		input.TenantName = tenant.Name
	}
	for _, role := range access.User.Roles {
		if name := strings.TrimSpace(role.Name); name != "" {
			input.Roles = append(input.Roles, name)
		}
	}
	for _, service := range access.ServiceCatalog {
		catalog := core.CatalogService{Type: service.Type, Name: service.Name}
		for _, endpoint := range service.Endpoints {
			catalog.Endpoints = append(catalog.Endpoints, core.CatalogEndpoint{
				ID:          endpoint.ID,
				TenantID:    endpoint.TenantID,
				Region:      endpoint.Region,
				PublicURL:   endpoint.PublicURL,
				InternalURL: endpoint.InternalURL,
				AdminURL:    endpoint.AdminURL,
				VersionID:   endpoint.VersionID,
			})
		}
		input.Catalog = append(input.Catalog, catalog)
	}
	return core.NewAccess(input)
}
