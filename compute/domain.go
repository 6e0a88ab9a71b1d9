package compute

import (
	"fmt"
	"strings"
)

type OsFamily string

const (
	OsFamilyUnrecognized OsFamily = "UNRECOGNIZED"
	OsFamilyLinux        OsFamily = "LINUX"
	OsFamilyWindows      OsFamily = "WINDOWS"
	OsFamilyUbuntu       OsFamily = "UBUNTU"
	OsFamilyDebian       OsFamily = "DEBIAN"
	OsFamilyCentOS       OsFamily = "CENTOS"
	OsFamilyRHEL         OsFamily = "RHEL"
	OsFamilyFedora       OsFamily = "FEDORA"
	OsFamilySUSE         OsFamily = "SUSE"
	OsFamilyFreeBSD      OsFamily = "FREEBSD"
)

var knownFamilies = []OsFamily{
	OsFamilyLinux,
	OsFamilyWindows,
	OsFamilyUbuntu,
	OsFamilyDebian,
	OsFamilyCentOS,
	OsFamilyRHEL,
	OsFamilyFedora,
	OsFamilySUSE,
	OsFamilyFreeBSD,
}

// ParseOsFamily matches value case-insensitively; unknown names map to
// OsFamilyUnrecognized.
func ParseOsFamily(value string) OsFamily {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, family := range knownFamilies {
		if string(family) == normalized {
			return family
		}
	}
	return OsFamilyUnrecognized
}

// LoginCredentials are the credentials used to log in to a node.
type LoginCredentials struct {
	User             string `json:"user"`
	Password         string `json:"password,omitempty"`
	PrivateKey       string `json:"private_key,omitempty"`
	AuthenticateSudo bool   `json:"authenticate_sudo,omitempty"`
}

func (c LoginCredentials) IsZero() bool {
	return strings.TrimSpace(c.User) == "" && c.Password == "" && c.PrivateKey == ""
}

func (c LoginCredentials) HasPassword() bool   { return c.Password != "" }
func (c LoginCredentials) HasPrivateKey() bool { return c.PrivateKey != "" }

// String never prints the password or private key.
func (c LoginCredentials) String() string {
	return fmt.Sprintf("LoginCredentials{User: %q, Password: %t, PrivateKey: %t}",
		c.User, c.HasPassword(), c.HasPrivateKey())
}

type Image struct {
	ID                 string
	OsFamily           OsFamily
	DefaultCredentials *LoginCredentials
}

type Node struct {
	ID         string
	ProviderID string
	Image      Image
}

// LoginDefaults supplies the provider's default credentials for an OS family.
type LoginDefaults interface {
	DefaultLogin(family OsFamily) LoginCredentials
}

// FamilyLoginDefaults is a lookup table with a fallback user.
type FamilyLoginDefaults struct {
	Users    map[OsFamily]string
	Fallback string
}

func (d FamilyLoginDefaults) DefaultLogin(family OsFamily) LoginCredentials {
	if user, ok := d.Users[family]; ok && strings.TrimSpace(user) != "" {
		return LoginCredentials{User: user}
	}
	if strings.TrimSpace(d.Fallback) != "" {
		return LoginCredentials{User: d.Fallback}
	}
	return LoginCredentials{User: DefaultLoginUser}
}

// Override returns a copy of d where users replaces the matching entries.
func (d FamilyLoginDefaults) Override(users map[OsFamily]string) FamilyLoginDefaults {
	merged := make(map[OsFamily]string, len(d.Users)+len(users))
	for family, user := range d.Users {
		merged[family] = user
	}
	for family, user := range users {
		merged[family] = user
	}
	return FamilyLoginDefaults{Users: merged, Fallback: d.Fallback}
}

const DefaultLoginUser = "root"
