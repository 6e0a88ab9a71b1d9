package director

const Namespace = "http://www.vmware.com/vcloud/v1.5"

const (
	MediaTypeAny      = "*/*"
	MediaTypeAnyImage = "image/*"

	MediaTypeError   = "application/vnd.vmware.vcloud.error+xml"
	MediaTypeTask    = "application/vnd.vmware.vcloud.task+xml"
	MediaTypeSession = "application/vnd.vmware.vcloud.session+xml"
	MediaTypeOrgList = "application/vnd.vmware.vcloud.orgList+xml"
	MediaTypeOwner   = "application/vnd.vmware.vcloud.owner+xml"
	MediaTypeVDC     = "application/vnd.vmware.vcloud.vdc+xml"
	MediaTypeNetwork = "application/vnd.vmware.vcloud.network+xml"
	MediaTypeUser    = "application/vnd.vmware.admin.user+xml"

	MediaTypeVAppTemplate     = "application/vnd.vmware.vcloud.vAppTemplate+xml"
	MediaTypeVApp             = "application/vnd.vmware.vcloud.vApp+xml"
	MediaTypeVm               = "application/vnd.vmware.vcloud.vm+xml"
	MediaTypeMetadata         = "application/vnd.vmware.vcloud.metadata+xml"
	MediaTypeMetadataValue    = "application/vnd.vmware.vcloud.metadata.value+xml"
	MediaTypeRelocateTemplate = "application/vnd.vmware.vcloud.relocateTemplateParams+xml"
	MediaTypeRelocateVm       = "application/vnd.vmware.vcloud.relocateVmParams+xml"
	MediaTypeDeployVApp       = "application/vnd.vmware.vcloud.deployVAppParams+xml"
	MediaTypeUndeployVApp     = "application/vnd.vmware.vcloud.undeployVAppParams+xml"
	MediaTypeMediaParams      = "application/vnd.vmware.vcloud.mediaInsertOrEjectParams+xml"

	MediaTypeCustomizationSection      = "application/vnd.vmware.vcloud.customizationSection+xml"
	MediaTypeGuestCustomizationSection = "application/vnd.vmware.vcloud.guestCustomizationSection+xml"
	MediaTypeLeaseSettingsSection      = "application/vnd.vmware.vcloud.leaseSettingsSection+xml"
	MediaTypeNetworkConfigSection      = "application/vnd.vmware.vcloud.networkConfigSection+xml"
	MediaTypeNetworkConnectionSection  = "application/vnd.vmware.vcloud.networkConnectionSection+xml"
	MediaTypeOperatingSystemSection    = "application/vnd.vmware.vcloud.operatingSystemSection+xml"
	MediaTypeProductSectionList        = "application/vnd.vmware.vcloud.productSections+xml"
	MediaTypeRuntimeInfoSection        = "application/vnd.vmware.vcloud.runtimeInfoSection+xml"
	MediaTypeVirtualHardwareSection    = "application/vnd.vmware.vcloud.virtualHardwareSection+xml"

	MediaTypeVmPendingQuestion = "application/vnd.vmware.vcloud.vmPendingQuestion+xml"
	MediaTypeVmPendingAnswer   = "application/vnd.vmware.vcloud.vmPendingAnswer+xml"
	MediaTypeScreenTicket      = "application/vnd.vmware.vcloud.screenTicket+xml"
	MediaTypeRasdItem          = "application/vnd.vmware.vcloud.rasdItem+xml"
	MediaTypeRasdItemsList     = "application/vnd.vmware.vcloud.rasdItemsList+xml"
)
