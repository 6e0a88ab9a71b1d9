package director

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-clouds/core"
)

type Link struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr,omitempty"`
	Href string `xml:"href,attr"`
	Name string `xml:"name,attr,omitempty"`
}

type Reference struct {
	Href string `xml:"href,attr"`
	ID   string `xml:"id,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
	Name string `xml:"name,attr,omitempty"`
}

// ResourceReference converts r for use with the typed APIs.
func (r Reference) ResourceReference() (core.ResourceReference, error) {
	return core.NewResourceReference(r.Href, r.Type)
}

// Error is the body vCloud Director returns with every non-2xx status.
type Error struct {
	Message                 string `xml:"message,attr"`
	MajorErrorCode          int    `xml:"majorErrorCode,attr"`
	MinorErrorCode          string `xml:"minorErrorCode,attr"`
	VendorSpecificErrorCode string `xml:"vendorSpecificErrorCode,attr,omitempty"`
	StackTrace              string `xml:"stackTrace,attr,omitempty"`
}

func (e Error) Describe() string {
	message := strings.TrimSpace(e.Message)
	if e.MinorErrorCode != "" {
		message = fmt.Sprintf("%s (%s)", message, e.MinorErrorCode)
	}
	return message
}

// Task is an asynchronous operation started by a mutating request.
type Task struct {
	Href          string      `xml:"href,attr"`
	Type          string      `xml:"type,attr,omitempty"`
	ID            string      `xml:"id,attr,omitempty"`
	Name          string      `xml:"name,attr,omitempty"`
	Status        string      `xml:"status,attr"`
	Operation     string      `xml:"operation,attr,omitempty"`
	OperationName string      `xml:"operationName,attr,omitempty"`
	StartTime     string      `xml:"startTime,attr,omitempty"`
	EndTime       string      `xml:"endTime,attr,omitempty"`
	ExpiryTime    string      `xml:"expiryTime,attr,omitempty"`
	Links         []Link      `xml:"Link"`
	Description   string      `xml:"Description,omitempty"`
	Owner         *Reference  `xml:"Owner"`
	Error         *Error      `xml:"Error"`
	User          *Reference  `xml:"User"`
	Organization  *Reference  `xml:"Organization"`
	Progress      *int        `xml:"Progress"`
	Params        *TaskParams `xml:"Params"`
}

type TaskParams struct {
	Value string `xml:",innerxml"`
}

const (
	TaskStatusQueued     = "queued"
	TaskStatusPreRunning = "preRunning"
	TaskStatusRunning    = "running"
	TaskStatusSuccess    = "success"
	TaskStatusError      = "error"
	TaskStatusCanceled   = "canceled"
	TaskStatusAborted    = "aborted"
)

func (t Task) TaskHref() string   { return t.Href }
func (t Task) TaskStatus() string { return t.Status }

func (t Task) Done() bool {
	switch t.Status {
	case TaskStatusSuccess, TaskStatusError, TaskStatusCanceled, TaskStatusAborted:
		return true
	}
	return false
}

type Owner struct {
	Href  string     `xml:"href,attr,omitempty"`
	Type  string     `xml:"type,attr,omitempty"`
	Links []Link     `xml:"Link"`
	User  *Reference `xml:"User"`
}

// VAppTemplate identity is its href; equality is structural.
type VAppTemplate struct {
	Href                  string         `xml:"href,attr"`
	Type                  string         `xml:"type,attr,omitempty"`
	ID                    string         `xml:"id,attr,omitempty"`
	Name                  string         `xml:"name,attr"`
	Status                int            `xml:"status,attr"`
	OvfDescriptorUploaded bool           `xml:"ovfDescriptorUploaded,attr"`
	GoldMaster            bool           `xml:"goldMaster,attr"`
	Links                 []Link         `xml:"Link"`
	Description           string         `xml:"Description,omitempty"`
	Tasks                 []Task         `xml:"Tasks>Task"`
	Owner                 *Owner         `xml:"Owner"`
	Children              []VAppTemplate `xml:"Children>Vm"`
	VAppScopedLocalID     string         `xml:"VAppScopedLocalId,omitempty"`

	LeaseSettingsSection      *LeaseSettingsSection      `xml:"LeaseSettingsSection"`
	CustomizationSection      *CustomizationSection      `xml:"CustomizationSection"`
	GuestCustomizationSection *GuestCustomizationSection `xml:"GuestCustomizationSection"`
	NetworkConfigSection      *NetworkConfigSection      `xml:"NetworkConfigSection"`
}

type LeaseSettingsSection struct {
	Href                      string `xml:"href,attr,omitempty"`
	Type                      string `xml:"type,attr,omitempty"`
	Required                  bool   `xml:"required,attr"`
	Info                      string `xml:"Info"`
	Links                     []Link `xml:"Link"`
	DeploymentLeaseInSeconds  *int   `xml:"DeploymentLeaseInSeconds"`
	StorageLeaseInSeconds     *int   `xml:"StorageLeaseInSeconds"`
	DeploymentLeaseExpiration string `xml:"DeploymentLeaseExpiration,omitempty"`
	StorageLeaseExpiration    string `xml:"StorageLeaseExpiration,omitempty"`
}

func (s LeaseSettingsSection) DeploymentLeaseExpiresAt() (time.Time, bool) {
	return parseTimestamp(s.DeploymentLeaseExpiration)
}

type CustomizationSection struct {
	Href                   string `xml:"href,attr,omitempty"`
	Type                   string `xml:"type,attr,omitempty"`
	Required               bool   `xml:"required,attr"`
	Info                   string `xml:"Info"`
	CustomizeOnInstantiate bool   `xml:"CustomizeOnInstantiate"`
	Links                  []Link `xml:"Link"`
}

type GuestCustomizationSection struct {
	Href                  string `xml:"href,attr,omitempty"`
	Type                  string `xml:"type,attr,omitempty"`
	Required              bool   `xml:"required,attr"`
	Info                  string `xml:"Info"`
	Enabled               bool   `xml:"Enabled"`
	ChangeSid             bool   `xml:"ChangeSid"`
	VirtualMachineID      string `xml:"VirtualMachineId,omitempty"`
	JoinDomainEnabled     bool   `xml:"JoinDomainEnabled"`
	UseOrgSettings        bool   `xml:"UseOrgSettings"`
	DomainName            string `xml:"DomainName,omitempty"`
	DomainUserName        string `xml:"DomainUserName,omitempty"`
	DomainUserPassword    string `xml:"DomainUserPassword,omitempty"`
	AdminPasswordEnabled  bool   `xml:"AdminPasswordEnabled"`
	AdminPasswordAuto     bool   `xml:"AdminPasswordAuto"`
	AdminPassword         string `xml:"AdminPassword,omitempty"`
	ResetPasswordRequired bool   `xml:"ResetPasswordRequired"`
	CustomizationScript   string `xml:"CustomizationScript,omitempty"`
	ComputerName          string `xml:"ComputerName,omitempty"`
	Links                 []Link `xml:"Link"`
}

type NetworkConfigSection struct {
	Href           string                     `xml:"href,attr,omitempty"`
	Type           string                     `xml:"type,attr,omitempty"`
	Required       bool                       `xml:"required,attr"`
	Info           string                     `xml:"Info"`
	Links          []Link                     `xml:"Link"`
	NetworkConfigs []VAppNetworkConfiguration `xml:"NetworkConfig"`
}

type VAppNetworkConfiguration struct {
	NetworkName   string                `xml:"networkName,attr"`
	Description   string                `xml:"Description,omitempty"`
	Configuration *NetworkConfiguration `xml:"Configuration"`
	IsDeployed    *bool                 `xml:"IsDeployed"`
}

type NetworkConfiguration struct {
	IPScope       *IPScope         `xml:"IpScope"`
	ParentNetwork *Reference       `xml:"ParentNetwork"`
	FenceMode     string           `xml:"FenceMode"`
	Features      *NetworkFeatures `xml:"Features"`
}

const (
	FenceModeBridged   = "bridged"
	FenceModeIsolated  = "isolated"
	FenceModeNATRouted = "natRouted"
)

type IPScope struct {
	IsInherited bool      `xml:"IsInherited"`
	Gateway     string    `xml:"Gateway,omitempty"`
	Netmask     string    `xml:"Netmask,omitempty"`
	DNS1        string    `xml:"Dns1,omitempty"`
	DNS2        string    `xml:"Dns2,omitempty"`
	DNSSuffix   string    `xml:"DnsSuffix,omitempty"`
	IPRanges    []IPRange `xml:"IpRanges>IpRange"`
}

type IPRange struct {
	StartAddress string `xml:"StartAddress"`
	EndAddress   string `xml:"EndAddress"`
}

type NetworkFeatures struct {
	FirewallService *FirewallService `xml:"FirewallService"`
	NatService      *NatService      `xml:"NatService"`
}

type FirewallService struct {
	IsEnabled     bool           `xml:"IsEnabled"`
	FirewallRules []FirewallRule `xml:"FirewallRule"`
}

type FirewallRule struct {
	IsEnabled     bool                   `xml:"IsEnabled"`
	Description   string                 `xml:"Description,omitempty"`
	Policy        string                 `xml:"Policy,omitempty"`
	Protocols     *FirewallRuleProtocols `xml:"Protocols"`
	Port          int                    `xml:"Port,omitempty"`
	DestinationIP string                 `xml:"DestinationIp,omitempty"`
	SourcePort    int                    `xml:"SourcePort,omitempty"`
	SourceIP      string                 `xml:"SourceIp,omitempty"`
}

type FirewallRuleProtocols struct {
	TCP  bool `xml:"Tcp,omitempty"`
	UDP  bool `xml:"Udp,omitempty"`
	ICMP bool `xml:"Icmp,omitempty"`
	Any  bool `xml:"Any,omitempty"`
}

type NatService struct {
	IsEnabled bool      `xml:"IsEnabled"`
	NatType   string    `xml:"NatType,omitempty"`
	Policy    string    `xml:"Policy,omitempty"`
	NatRules  []NatRule `xml:"NatRule"`
}

type NatRule struct {
	OneToOneVMRule *NatOneToOneVMRule `xml:"OneToOneVmRule"`
}

type NatOneToOneVMRule struct {
	MappingMode       string `xml:"MappingMode"`
	ExternalIPAddress string `xml:"ExternalIpAddress"`
	VAppScopedVMID    string `xml:"VAppScopedVmId"`
	VMNicID           int    `xml:"VmNicId"`
}

type Metadata struct {
	Href    string          `xml:"href,attr,omitempty"`
	Type    string          `xml:"type,attr,omitempty"`
	Links   []Link          `xml:"Link"`
	Entries []MetadataEntry `xml:"MetadataEntry"`
}

type MetadataEntry struct {
	Href  string `xml:"href,attr,omitempty"`
	Type  string `xml:"type,attr,omitempty"`
	Links []Link `xml:"Link"`
	Key   string `xml:"Key"`
	Value string `xml:"Value"`
}

type MetadataValue struct {
	Href  string `xml:"href,attr,omitempty"`
	Type  string `xml:"type,attr,omitempty"`
	Links []Link `xml:"Link"`
	Value string `xml:"Value"`
}

// RelocateParams moves a template or VM to another datastore.
type RelocateParams struct {
	Datastore Reference `xml:"Datastore"`
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

var _ core.Task = Task{}
