package auth

import (
	"errors"
	"net/http"
	"os"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-clouds/core"
)

var ErrOpenStackCredentialsNotFound = errors.New("auth: no openstack credentials found in environment")

// OpenStackEnvironment is the login material read from the OS_* variables.
type OpenStackEnvironment struct {
	Scheme      core.IdentityScheme
	Credentials core.Credentials
	Endpoint    string
	Region      string
}

// DetectOpenStackCredentials reads OS_* variables through getenv, preferring
// access keys over a username and password. A nil getenv reads the process
// environment.
func DetectOpenStackCredentials(getenv func(string) string) (OpenStackEnvironment, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := OpenStackEnvironment{
		Endpoint: firstNonEmpty(getenv("OS_AUTH_URL")),
		Region:   firstNonEmpty(getenv("OS_REGION_NAME")),
	}
	tenantID := firstNonEmpty(getenv("OS_TENANT_ID"), getenv("OS_PROJECT_ID"))
	tenantName := firstNonEmpty(getenv("OS_TENANT_NAME"), getenv("OS_PROJECT_NAME"))

	accessKey := firstNonEmpty(getenv("OS_ACCESS_KEY"))
	secretKey := firstNonEmpty(getenv("OS_SECRET_KEY"))
	if accessKey != "" && secretKey != "" {
		if tenant := firstNonEmpty(tenantID, tenantName); tenant != "" {
			env.Scheme = KeystoneAccessKeyScheme
			env.Credentials = core.Credentials{
				Identity:   KeystoneAccessKeyScheme.Join(tenant, accessKey),
				Credential: secretKey,
			}
			return env, nil
		}
	}

	username := firstNonEmpty(getenv("OS_USERNAME"))
	password := firstNonEmpty(getenv("OS_PASSWORD"))
	if username != "" && password != "" {
		if tenant := firstNonEmpty(tenantName, tenantID); tenant != "" {
			env.Scheme = KeystonePasswordScheme
			env.Credentials = core.Credentials{
				Identity:   KeystonePasswordScheme.Join(tenant, username),
				Credential: password,
			}
			return env, nil
		}
	}

	return OpenStackEnvironment{}, goerrors.Wrap(ErrOpenStackCredentialsNotFound, goerrors.CategoryNotFound,
		ErrOpenStackCredentialsNotFound.Error()).
		WithCode(http.StatusNotFound).
		WithTextCode(core.CloudErrorMalformedCredentials)
}
