package keystone

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const MediaTypeJSON = "application/json"

// Credentials is implemented by the payloads Keystone accepts under "auth".
type Credentials interface {
	credentialsKey() string
}

type APIAccessKeyCredentials struct {
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
}

func (APIAccessKeyCredentials) credentialsKey() string { return "apiAccessKeyCredentials" }

func (c APIAccessKeyCredentials) String() string {
	return fmt.Sprintf("APIAccessKeyCredentials{AccessKey: %q}", c.AccessKey)
}

type PasswordCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (PasswordCredentials) credentialsKey() string { return "passwordCredentials" }

func (c PasswordCredentials) String() string {
	return fmt.Sprintf("PasswordCredentials{Username: %q}", c.Username)
}

type Access struct {
	Token          Token     `json:"token"`
	User           User      `json:"user"`
	ServiceCatalog []Service `json:"serviceCatalog"`
}

type Token struct {
	ID      string  `json:"id"`
	Expires string  `json:"expires"`
	Tenant  *Tenant `json:"tenant,omitempty"`
}

// ExpiresAt parses the token expiry. Keystone deployments disagree on the
// timestamp layout, so several are accepted.
func (t Token) ExpiresAt() (time.Time, bool) {
	value := strings.TrimSpace(t.Expires)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Roles []Role `json:"roles,omitempty"`
}

type Role struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	ServiceID string `json:"serviceId,omitempty"`
	TenantID  string `json:"tenantId,omitempty"`
}

type Service struct {
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Endpoints []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	ID          string `json:"id,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
	Region      string `json:"region,omitempty"`
	PublicURL   string `json:"publicURL,omitempty"`
	InternalURL string `json:"internalURL,omitempty"`
	AdminURL    string `json:"adminURL,omitempty"`
	VersionID   string `json:"versionId,omitempty"`
}

type accessEnvelope struct {
	Access Access `json:"access"`
}

// tokenRequest renders as {"auth": {<credentialsKey>: {...}, "tenantId"|"tenantName": ...}}.
type tokenRequest struct {
	tenantID    string
	tenantName  string
	credentials Credentials
}

func (r tokenRequest) MarshalJSON() ([]byte, error) {
	auth := map[string]any{
		r.credentials.credentialsKey(): r.credentials,
	}
	if r.tenantID != "" {
		auth["tenantId"] = r.tenantID
	}
	if r.tenantName != "" {
		auth["tenantName"] = r.tenantName
	}
	return json.Marshal(map[string]any{"auth": auth})
}
