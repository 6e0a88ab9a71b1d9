package main

import (
	"io"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
	cloudsquery "github.com/goliatone/go-clouds/query"
)

const redacted = "REDACTED"

type providerView struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	API             string `yaml:"api"`
	APIVersion      string `yaml:"api_version"`
	DefaultEndpoint string `yaml:"default_endpoint"`
	IdentityName    string `yaml:"identity_name"`
	CredentialName  string `yaml:"credential_name,omitempty"`
	IdentityScheme  string `yaml:"identity_scheme,omitempty"`
	Documentation   string `yaml:"documentation,omitempty"`
	Pack            string `yaml:"pack,omitempty"`
}

// newProviderViews renders provider metadata. packOf names the pack that
// registered a provider and may be nil.
func newProviderViews(items []core.ProviderMetadata, packOf func(string) (string, bool)) []providerView {
	out := make([]providerView, 0, len(items))
	for _, meta := range items {
		out = append(out, providerView{
			ID:              meta.ID,
			Name:            meta.Name,
			API:             meta.API,
			APIVersion:      meta.APIVersion,
			DefaultEndpoint: meta.DefaultEndpoint,
			IdentityName:    meta.IdentityName,
			CredentialName:  meta.CredentialName,
			IdentityScheme:  meta.IdentityScheme.Name,
			Documentation:   meta.Documentation,
		})
		if packOf != nil {
			out[len(out)-1].Pack, _ = packOf(meta.ID)
		}
	}
	return out
}

type accessView struct {
	ProviderID  string   `yaml:"provider_id"`
	Token       string   `yaml:"token"`
	TokenHeader string   `yaml:"token_header"`
	ExpiresAt   string   `yaml:"expires_at,omitempty"`
	TenantID    string   `yaml:"tenant_id,omitempty"`
	TenantName  string   `yaml:"tenant_name,omitempty"`
	UserID      string   `yaml:"user_id,omitempty"`
	UserName    string   `yaml:"user_name,omitempty"`
	Roles       []string `yaml:"roles,omitempty"`
	Services    []string `yaml:"services,omitempty"`
}

func newAccessView(access core.Access, showToken bool) accessView {
	view := accessView{
		ProviderID:  access.ProviderID(),
		Token:       redacted,
		TokenHeader: access.TokenHeader(),
		TenantID:    access.TenantID(),
		TenantName:  access.TenantName(),
		UserID:      access.UserID(),
		UserName:    access.UserName(),
		Roles:       access.Roles(),
	}
	if showToken {
		view.Token = access.Token()
	}
	if expires, ok := access.ExpiresAt(); ok {
		view.ExpiresAt = expires.UTC().Format(time.RFC3339)
	}
	for _, service := range access.Catalog() {
		view.Services = append(view.Services, service.Type)
	}
	return view
}

type loginView struct {
	NodeID           string `yaml:"node_id,omitempty"`
	Found            bool   `yaml:"found"`
	User             string `yaml:"user,omitempty"`
	Password         string `yaml:"password,omitempty"`
	PrivateKey       string `yaml:"private_key,omitempty"`
	AuthenticateSudo bool   `yaml:"authenticate_sudo"`
}

// newLoginView never prints secrets, only whether they are set.
func newLoginView(nodeID string, found bool, credentials compute.LoginCredentials) loginView {
	view := loginView{
		NodeID:           nodeID,
		Found:            found,
		User:             credentials.User,
		AuthenticateSudo: credentials.AuthenticateSudo,
	}
	if credentials.HasPassword() {
		view.Password = redacted
	}
	if credentials.HasPrivateKey() {
		view.PrivateKey = redacted
	}
	return view
}

func newStoredLoginView(login cloudsquery.NodeLogin) loginView {
	return newLoginView(login.NodeID, login.Found, login.Credentials)
}

type resourceView struct {
	Href        string   `yaml:"href"`
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type,omitempty"`
	Status      int      `yaml:"status"`
	Description string   `yaml:"description,omitempty"`
	Deployed    *bool    `yaml:"deployed,omitempty"`
	Children    []string `yaml:"children,omitempty"`
	Tasks       []string `yaml:"tasks,omitempty"`
}

func newVAppTemplateView(template *director.VAppTemplate) resourceView {
	view := resourceView{
		Href:        template.Href,
		ID:          template.ID,
		Name:        template.Name,
		Type:        template.Type,
		Status:      template.Status,
		Description: template.Description,
	}
	for _, child := range template.Children {
		view.Children = append(view.Children, child.Href)
	}
	for _, task := range template.Tasks {
		view.Tasks = append(view.Tasks, task.Href)
	}
	return view
}

func newVmView(vm *director.Vm) resourceView {
	deployed := vm.Deployed
	view := resourceView{
		Href:        vm.Href,
		ID:          vm.ID,
		Name:        vm.Name,
		Type:        vm.Type,
		Status:      vm.Status,
		Description: vm.Description,
		Deployed:    &deployed,
	}
	for _, task := range vm.Tasks {
		view.Tasks = append(view.Tasks, task.Href)
	}
	return view
}

type notFoundView struct {
	URI   string `yaml:"uri"`
	Found bool   `yaml:"found"`
}

func writeYAML(w io.Writer, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
