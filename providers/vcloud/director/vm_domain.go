package director

// Vm is a virtual machine inside a vApp.
type Vm struct {
	Href               string `xml:"href,attr"`
	Type               string `xml:"type,attr,omitempty"`
	ID                 string `xml:"id,attr,omitempty"`
	Name               string `xml:"name,attr"`
	Status             int    `xml:"status,attr"`
	Deployed           bool   `xml:"deployed,attr"`
	NeedsCustomization bool   `xml:"needsCustomization,attr,omitempty"`
	Links              []Link `xml:"Link"`
	Description        string `xml:"Description,omitempty"`
	Tasks              []Task `xml:"Tasks>Task"`
	VAppScopedLocalID  string `xml:"VAppScopedLocalId,omitempty"`
	Owner              *Owner `xml:"Owner"`

	VirtualHardwareSection    *VirtualHardwareSection    `xml:"VirtualHardwareSection"`
	OperatingSystemSection    *OperatingSystemSection    `xml:"OperatingSystemSection"`
	NetworkConnectionSection  *NetworkConnectionSection  `xml:"NetworkConnectionSection"`
	GuestCustomizationSection *GuestCustomizationSection `xml:"GuestCustomizationSection"`
	RuntimeInfoSection        *RuntimeInfoSection        `xml:"RuntimeInfoSection"`
}

// Resource status codes shared by vApps, templates and VMs.
const (
	StatusFailedCreation = -1
	StatusUnresolved     = 0
	StatusResolved       = 1
	StatusSuspended      = 3
	StatusPoweredOn      = 4
	StatusUnknown        = 6
	StatusPoweredOff     = 8
	StatusMixed          = 10
)

type NetworkConnectionSection struct {
	Href                          string              `xml:"href,attr,omitempty"`
	Type                          string              `xml:"type,attr,omitempty"`
	Required                      bool                `xml:"required,attr"`
	Info                          string              `xml:"Info"`
	PrimaryNetworkConnectionIndex *int                `xml:"PrimaryNetworkConnectionIndex"`
	NetworkConnections            []NetworkConnection `xml:"NetworkConnection"`
	Links                         []Link              `xml:"Link"`
}

type NetworkConnection struct {
	Network                 string `xml:"network,attr"`
	NeedsCustomization      bool   `xml:"needsCustomization,attr,omitempty"`
	NetworkConnectionIndex  int    `xml:"NetworkConnectionIndex"`
	IPAddress               string `xml:"IpAddress,omitempty"`
	ExternalIPAddress       string `xml:"ExternalIpAddress,omitempty"`
	IsConnected             bool   `xml:"IsConnected"`
	MACAddress              string `xml:"MACAddress,omitempty"`
	IPAddressAllocationMode string `xml:"IpAddressAllocationMode"`
}

const (
	IPAllocationPool   = "POOL"
	IPAllocationDHCP   = "DHCP"
	IPAllocationManual = "MANUAL"
	IPAllocationNone   = "NONE"
)

type OperatingSystemSection struct {
	Href        string `xml:"href,attr,omitempty"`
	Type        string `xml:"type,attr,omitempty"`
	ID          int    `xml:"id,attr"`
	OsType      string `xml:"osType,attr,omitempty"`
	Required    bool   `xml:"required,attr"`
	Info        string `xml:"Info"`
	Description string `xml:"Description,omitempty"`
	Links       []Link `xml:"Link"`
}

type ProductSectionList struct {
	Href     string           `xml:"href,attr,omitempty"`
	Type     string           `xml:"type,attr,omitempty"`
	Links    []Link           `xml:"Link"`
	Sections []ProductSection `xml:"ProductSection"`
}

func (ProductSectionList) XMLRootName() string { return "ProductSectionList" }

type ProductSection struct {
	Required   bool              `xml:"required,attr"`
	Info       string            `xml:"Info"`
	Product    string            `xml:"Product,omitempty"`
	Vendor     string            `xml:"Vendor,omitempty"`
	Version    string            `xml:"Version,omitempty"`
	Properties []ProductProperty `xml:"Property"`
}

type ProductProperty struct {
	Key              string `xml:"key,attr"`
	Type             string `xml:"type,attr"`
	Value            string `xml:"value,attr,omitempty"`
	UserConfigurable bool   `xml:"userConfigurable,attr,omitempty"`
	Label            string `xml:"Label,omitempty"`
	Description      string `xml:"Description,omitempty"`
}

type VmPendingQuestion struct {
	Href       string             `xml:"href,attr,omitempty"`
	Type       string             `xml:"type,attr,omitempty"`
	Links      []Link             `xml:"Link"`
	Question   string             `xml:"Question"`
	QuestionID string             `xml:"QuestionId"`
	Choices    []VmQuestionChoice `xml:"Choice"`
}

type VmQuestionChoice struct {
	ID   int    `xml:"Id"`
	Text string `xml:"Text"`
}

type VmQuestionAnswer struct {
	ChoiceID   int    `xml:"ChoiceId"`
	QuestionID string `xml:"QuestionId"`
}

type RuntimeInfoSection struct {
	Href        string       `xml:"href,attr,omitempty"`
	Type        string       `xml:"type,attr,omitempty"`
	Info        string       `xml:"Info"`
	VMWareTools *VMWareTools `xml:"VMWareTools"`
}

type VMWareTools struct {
	Version string `xml:"version,attr"`
}

// ScreenTicket carries the console ticket as character data.
type ScreenTicket struct {
	Value string `xml:",chardata"`
}

type VirtualHardwareSection struct {
	Href     string     `xml:"href,attr,omitempty"`
	Type     string     `xml:"type,attr,omitempty"`
	Required bool       `xml:"required,attr"`
	Info     string     `xml:"Info"`
	System   *VSSD      `xml:"System"`
	Items    []RasdItem `xml:"Item"`
	Links    []Link     `xml:"Link"`
}

// VSSD describes the virtual system type.
type VSSD struct {
	ElementName             string `xml:"ElementName"`
	InstanceID              string `xml:"InstanceID"`
	VirtualSystemIdentifier string `xml:"VirtualSystemIdentifier,omitempty"`
	VirtualSystemType       string `xml:"VirtualSystemType,omitempty"`
}

// RasdItem is one virtual hardware resource allocation.
type RasdItem struct {
	Href                string             `xml:"href,attr,omitempty"`
	Type                string             `xml:"type,attr,omitempty"`
	Address             string             `xml:"Address,omitempty"`
	AddressOnParent     string             `xml:"AddressOnParent,omitempty"`
	AllocationUnits     string             `xml:"AllocationUnits,omitempty"`
	AutomaticAllocation *bool              `xml:"AutomaticAllocation"`
	Connections         []RasdConnection   `xml:"Connection"`
	Description         string             `xml:"Description,omitempty"`
	ElementName         string             `xml:"ElementName"`
	HostResources       []RasdHostResource `xml:"HostResource"`
	InstanceID          string             `xml:"InstanceID"`
	Parent              string             `xml:"Parent,omitempty"`
	ResourceSubType     string             `xml:"ResourceSubType,omitempty"`
	ResourceType        int                `xml:"ResourceType"`
	VirtualQuantity     *int64             `xml:"VirtualQuantity"`
	Reservation         *int64             `xml:"Reservation"`
	Limit               *int64             `xml:"Limit"`
	Weight              *int               `xml:"Weight"`
	Links               []Link             `xml:"Link"`
}

func (RasdItem) XMLRootName() string { return "Item" }

type RasdConnection struct {
	IPAddressingMode  string `xml:"ipAddressingMode,attr,omitempty"`
	IPAddress         string `xml:"ipAddress,attr,omitempty"`
	PrimaryConnection bool   `xml:"primaryNetworkConnection,attr,omitempty"`
	Network           string `xml:",chardata"`
}

type RasdHostResource struct {
	Capacity   string `xml:"capacity,attr,omitempty"`
	BusSubType string `xml:"busSubType,attr,omitempty"`
	BusType    string `xml:"busType,attr,omitempty"`
	Value      string `xml:",chardata"`
}

// Resource types from the CIM resource allocation schema.
const (
	ResourceTypeProcessor      = 3
	ResourceTypeMemory         = 4
	ResourceTypeIDEController  = 5
	ResourceTypeSCSIController = 6
	ResourceTypeEthernet       = 10
	ResourceTypeFloppy         = 14
	ResourceTypeCDDrive        = 15
	ResourceTypeDiskDrive      = 17
	ResourceTypeSerialPort     = 21
)

type RasdItemsList struct {
	Href  string     `xml:"href,attr,omitempty"`
	Type  string     `xml:"type,attr,omitempty"`
	Links []Link     `xml:"Link"`
	Items []RasdItem `xml:"Item"`
}

type MediaInsertOrEjectParams struct {
	Media Reference `xml:"Media"`
}

type DeployVAppParams struct {
	PowerOn                bool `xml:"powerOn,attr"`
	DeploymentLeaseSeconds *int `xml:"deploymentLeaseSeconds,attr,omitempty"`
	ForceCustomization     bool `xml:"forceCustomization,attr,omitempty"`
}

const (
	UndeployPowerOff = "powerOff"
	UndeploySuspend  = "suspend"
	UndeployShutdown = "shutdown"
	UndeployForce    = "force"
	UndeployDefault  = "default"
)

type UndeployVAppParams struct {
	UndeployPowerAction string `xml:"UndeployPowerAction,omitempty"`
}
