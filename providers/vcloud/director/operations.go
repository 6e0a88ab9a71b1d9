package director

import (
	"net/http"
	"sort"

	"github.com/goliatone/go-clouds/core"
)

func getOp(name, accept string) core.Operation {
	return core.Operation{Name: name, Method: http.MethodGet, AcceptMediaType: accept, Result: core.ResultObject}
}

func taskOp(name, method, body string) core.Operation {
	return core.Operation{Name: name, Method: method, AcceptMediaType: MediaTypeTask, BodyMediaType: body, Result: core.ResultTask}
}

// vm mutations accept any media type and decode the returned task.
func vmTaskOp(name, method, body string) core.Operation {
	return core.Operation{Name: name, Method: method, AcceptMediaType: MediaTypeAny, BodyMediaType: body, Result: core.ResultTask}
}

var (
	OpVAppTemplateGet             = getOp("vAppTemplate.get", MediaTypeVAppTemplate)
	OpVAppTemplateEdit            = taskOp("vAppTemplate.edit", http.MethodPut, MediaTypeVAppTemplate)
	OpVAppTemplateRemove          = taskOp("vAppTemplate.remove", http.MethodDelete, "")
	OpVAppTemplateConsolidate     = taskOp("vAppTemplate.consolidate", http.MethodPost, "")
	OpVAppTemplateDisableDownload = core.Operation{
		Name:            "vAppTemplate.disableDownload",
		Method:          http.MethodPost,
		AcceptMediaType: MediaTypeAny,
		Result:          core.ResultVoid,
	}
	OpVAppTemplateEnableDownload = taskOp("vAppTemplate.enableDownload", http.MethodPost, "")
	OpVAppTemplateRelocate       = taskOp("vAppTemplate.relocate", http.MethodPost, MediaTypeRelocateTemplate)

	OpVAppTemplateCustomizationSectionGet       = getOp("vAppTemplate.customizationSection.get", MediaTypeCustomizationSection)
	OpVAppTemplateCustomizationSectionEdit      = taskOp("vAppTemplate.customizationSection.edit", http.MethodPut, MediaTypeCustomizationSection)
	OpVAppTemplateGuestCustomizationSectionGet  = getOp("vAppTemplate.guestCustomizationSection.get", MediaTypeGuestCustomizationSection)
	OpVAppTemplateGuestCustomizationSectionEdit = taskOp("vAppTemplate.guestCustomizationSection.edit", http.MethodPut, MediaTypeGuestCustomizationSection)
	OpVAppTemplateLeaseSettingsSectionGet       = getOp("vAppTemplate.leaseSettingsSection.get", MediaTypeLeaseSettingsSection)
	OpVAppTemplateLeaseSettingsSectionEdit      = taskOp("vAppTemplate.leaseSettingsSection.edit", http.MethodPut, MediaTypeLeaseSettingsSection)
	OpVAppTemplateNetworkConfigSectionGet       = getOp("vAppTemplate.networkConfigSection.get", MediaTypeNetworkConfigSection)
	OpVAppTemplateNetworkConfigSectionEdit      = taskOp("vAppTemplate.networkConfigSection.edit", http.MethodPut, MediaTypeNetworkConfigSection)
	OpVAppTemplateOwnerGet                      = getOp("vAppTemplate.owner.get", MediaTypeOwner)

	OpVAppTemplateMetadataGet         = getOp("vAppTemplate.metadata.get", MediaTypeAny)
	OpVAppTemplateMetadataMerge       = taskOp("vAppTemplate.metadata.merge", http.MethodPost, MediaTypeMetadata)
	OpVAppTemplateMetadataEntryGet    = getOp("vAppTemplate.metadata.entry.get", MediaTypeMetadataValue)
	OpVAppTemplateMetadataEntryPut    = taskOp("vAppTemplate.metadata.entry.put", http.MethodPut, MediaTypeMetadataValue)
	OpVAppTemplateMetadataEntryRemove = taskOp("vAppTemplate.metadata.entry.remove", http.MethodDelete, "")
)

var (
	OpVmGet                    = getOp("vm.get", MediaTypeVm)
	OpVmEdit                   = vmTaskOp("vm.edit", http.MethodPut, MediaTypeVm)
	OpVmRemove                 = vmTaskOp("vm.remove", http.MethodDelete, "")
	OpVmConsolidate            = vmTaskOp("vm.consolidate", http.MethodPost, "")
	OpVmDeploy                 = vmTaskOp("vm.deploy", http.MethodPost, MediaTypeDeployVApp)
	OpVmDiscardSuspendedState  = vmTaskOp("vm.discardSuspendedState", http.MethodPost, "")
	OpVmInstallVMwareTools     = vmTaskOp("vm.installVMwareTools", http.MethodPost, "")
	OpVmRelocate               = vmTaskOp("vm.relocate", http.MethodPost, MediaTypeRelocateVm)
	OpVmUndeploy               = vmTaskOp("vm.undeploy", http.MethodPost, MediaTypeUndeployVApp)
	OpVmUpgradeHardwareVersion = vmTaskOp("vm.upgradeHardwareVersion", http.MethodPost, "")

	OpVmPowerOff = vmTaskOp("vm.power.powerOff", http.MethodPost, "")
	OpVmPowerOn  = vmTaskOp("vm.power.powerOn", http.MethodPost, "")
	OpVmReboot   = vmTaskOp("vm.power.reboot", http.MethodPost, "")
	OpVmReset    = vmTaskOp("vm.power.reset", http.MethodPost, "")
	OpVmShutdown = vmTaskOp("vm.power.shutdown", http.MethodPost, "")
	OpVmSuspend  = vmTaskOp("vm.power.suspend", http.MethodPost, "")

	OpVmGuestCustomizationSectionGet  = getOp("vm.guestCustomizationSection.get", MediaTypeAny)
	OpVmGuestCustomizationSectionEdit = vmTaskOp("vm.guestCustomizationSection.edit", http.MethodPut, MediaTypeGuestCustomizationSection)
	OpVmEjectMedia                    = vmTaskOp("vm.media.ejectMedia", http.MethodPut, MediaTypeMediaParams)
	OpVmInsertMedia                   = vmTaskOp("vm.media.insertMedia", http.MethodPut, MediaTypeMediaParams)
	OpVmNetworkConnectionSectionGet   = getOp("vm.networkConnectionSection.get", MediaTypeAny)
	OpVmNetworkConnectionSectionEdit  = vmTaskOp("vm.networkConnectionSection.edit", http.MethodPut, MediaTypeNetworkConnectionSection)
	OpVmOperatingSystemSectionGet     = getOp("vm.operatingSystemSection.get", MediaTypeAny)
	OpVmOperatingSystemSectionEdit    = vmTaskOp("vm.operatingSystemSection.edit", http.MethodPut, MediaTypeOperatingSystemSection)
	OpVmProductSectionsGet            = getOp("vm.productSections.get", MediaTypeAny)
	OpVmProductSectionsEdit           = vmTaskOp("vm.productSections.edit", http.MethodPut, MediaTypeProductSectionList)
	OpVmQuestionGet                   = getOp("vm.question.get", MediaTypeAny)
	OpVmQuestionAnswer                = core.Operation{
		Name:            "vm.question.answer",
		Method:          http.MethodPut,
		AcceptMediaType: MediaTypeAny,
		BodyMediaType:   MediaTypeVmPendingAnswer,
		Result:          core.ResultVoid,
	}
	OpVmRuntimeInfoSectionGet = getOp("vm.runtimeInfoSection.get", MediaTypeAny)
	OpVmScreenImageGet        = core.Operation{
		Name:            "vm.screen.get",
		Method:          http.MethodGet,
		AcceptMediaType: MediaTypeAnyImage,
		Result:          core.ResultRaw,
	}
	OpVmScreenTicketAcquire = core.Operation{
		Name:            "vm.screen.acquireTicket",
		Method:          http.MethodPost,
		AcceptMediaType: MediaTypeAny,
		Result:          core.ResultObject,
	}

	OpVmVirtualHardwareSectionGet              = getOp("vm.virtualHardwareSection.get", MediaTypeAny)
	OpVmVirtualHardwareSectionEdit             = vmTaskOp("vm.virtualHardwareSection.edit", http.MethodPut, MediaTypeVirtualHardwareSection)
	OpVmVirtualHardwareSectionCpuGet           = getOp("vm.virtualHardwareSection.cpu.get", MediaTypeAny)
	OpVmVirtualHardwareSectionCpuEdit          = vmTaskOp("vm.virtualHardwareSection.cpu.edit", http.MethodPut, MediaTypeRasdItem)
	OpVmVirtualHardwareSectionDisksGet         = getOp("vm.virtualHardwareSection.disks.get", MediaTypeAny)
	OpVmVirtualHardwareSectionDisksEdit        = vmTaskOp("vm.virtualHardwareSection.disks.edit", http.MethodPut, MediaTypeRasdItemsList)
	OpVmVirtualHardwareSectionMediaGet         = getOp("vm.virtualHardwareSection.media.get", MediaTypeAny)
	OpVmVirtualHardwareSectionMemoryGet        = getOp("vm.virtualHardwareSection.memory.get", MediaTypeAny)
	OpVmVirtualHardwareSectionMemoryEdit       = vmTaskOp("vm.virtualHardwareSection.memory.edit", http.MethodPut, MediaTypeRasdItem)
	OpVmVirtualHardwareSectionNetworkCardsGet  = getOp("vm.virtualHardwareSection.networkCards.get", MediaTypeAny)
	OpVmVirtualHardwareSectionNetworkCardsEdit = vmTaskOp("vm.virtualHardwareSection.networkCards.edit", http.MethodPut, MediaTypeRasdItemsList)
	OpVmVirtualHardwareSectionSerialPortsGet   = getOp("vm.virtualHardwareSection.serialPorts.get", MediaTypeAny)
	OpVmVirtualHardwareSectionSerialPortsEdit  = vmTaskOp("vm.virtualHardwareSection.serialPorts.edit", http.MethodPut, MediaTypeRasdItemsList)
)

func VAppTemplateOperations() []core.Operation {
	return []core.Operation{
		OpVAppTemplateGet,
		OpVAppTemplateEdit,
		OpVAppTemplateRemove,
		OpVAppTemplateConsolidate,
		OpVAppTemplateDisableDownload,
		OpVAppTemplateEnableDownload,
		OpVAppTemplateRelocate,
		OpVAppTemplateCustomizationSectionGet,
		OpVAppTemplateCustomizationSectionEdit,
		OpVAppTemplateGuestCustomizationSectionGet,
		OpVAppTemplateGuestCustomizationSectionEdit,
		OpVAppTemplateLeaseSettingsSectionGet,
		OpVAppTemplateLeaseSettingsSectionEdit,
		OpVAppTemplateNetworkConfigSectionGet,
		OpVAppTemplateNetworkConfigSectionEdit,
		OpVAppTemplateOwnerGet,
		OpVAppTemplateMetadataGet,
		OpVAppTemplateMetadataMerge,
		OpVAppTemplateMetadataEntryGet,
		OpVAppTemplateMetadataEntryPut,
		OpVAppTemplateMetadataEntryRemove,
	}
}

func VmOperations() []core.Operation {
	return []core.Operation{
		OpVmGet, OpVmEdit, OpVmRemove,
		OpVmConsolidate, OpVmDeploy, OpVmDiscardSuspendedState, OpVmInstallVMwareTools,
		OpVmRelocate, OpVmUndeploy, OpVmUpgradeHardwareVersion,
		OpVmPowerOff, OpVmPowerOn, OpVmReboot, OpVmReset, OpVmShutdown, OpVmSuspend,
		OpVmGuestCustomizationSectionGet, OpVmGuestCustomizationSectionEdit,
		OpVmEjectMedia, OpVmInsertMedia,
		OpVmNetworkConnectionSectionGet, OpVmNetworkConnectionSectionEdit,
		OpVmOperatingSystemSectionGet, OpVmOperatingSystemSectionEdit,
		OpVmProductSectionsGet, OpVmProductSectionsEdit,
		OpVmQuestionGet, OpVmQuestionAnswer,
		OpVmRuntimeInfoSectionGet, OpVmScreenImageGet, OpVmScreenTicketAcquire,
		OpVmVirtualHardwareSectionGet, OpVmVirtualHardwareSectionEdit,
		OpVmVirtualHardwareSectionCpuGet, OpVmVirtualHardwareSectionCpuEdit,
		OpVmVirtualHardwareSectionDisksGet, OpVmVirtualHardwareSectionDisksEdit,
		OpVmVirtualHardwareSectionMediaGet,
		OpVmVirtualHardwareSectionMemoryGet, OpVmVirtualHardwareSectionMemoryEdit,
		OpVmVirtualHardwareSectionNetworkCardsGet, OpVmVirtualHardwareSectionNetworkCardsEdit,
		OpVmVirtualHardwareSectionSerialPortsGet, OpVmVirtualHardwareSectionSerialPortsEdit,
	}
}

// Operations lists every director operation sorted by name.
func Operations() []core.Operation {
	ops := append(VAppTemplateOperations(), VmOperations()...)
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

var (
	genericOn400  = core.StatusPolicy{http.StatusBadRequest: core.OutcomeAPIError}
	notFoundOn403 = core.StatusPolicy{http.StatusForbidden: core.OutcomeNotFound}
	emptyOn403    = core.StatusPolicy{http.StatusForbidden: core.OutcomeEmpty}

	vmReadPolicy = core.StatusPolicy{
		http.StatusForbidden: core.OutcomeEmpty,
		http.StatusNotFound:  core.OutcomeEmpty,
	}
	vmWritePolicy = core.StatusPolicy{
		http.StatusBadRequest: core.OutcomeAPIError,
		http.StatusForbidden:  core.OutcomeNotFound,
		http.StatusNotFound:   core.OutcomeNotFound,
	}
)

// StatusPolicies returns the status table for every director operation.
// Each call builds a fresh table.
func StatusPolicies() *core.StatusPolicyTable {
	table := core.NewStatusPolicyTable()
	table.MustSet(OpVAppTemplateGet.Name, genericOn400)
	table.MustSet(OpVAppTemplateEdit.Name, notFoundOn403)
	table.MustSet(OpVAppTemplateRemove.Name, genericOn400)
	table.MustSet(OpVAppTemplateConsolidate.Name, notFoundOn403)
	table.MustSet(OpVAppTemplateDisableDownload.Name, genericOn400)
	table.MustSet(OpVAppTemplateEnableDownload.Name, notFoundOn403)
	table.MustSet(OpVAppTemplateRelocate.Name, genericOn400)
	table.MustSet(OpVAppTemplateCustomizationSectionGet.Name, emptyOn403)
	table.MustSet(OpVAppTemplateCustomizationSectionEdit.Name, notFoundOn403)
	table.MustSet(OpVAppTemplateGuestCustomizationSectionGet.Name, genericOn400)
	table.MustSet(OpVAppTemplateGuestCustomizationSectionEdit.Name, genericOn400)
	table.MustSet(OpVAppTemplateLeaseSettingsSectionGet.Name, emptyOn403)
	table.MustSet(OpVAppTemplateLeaseSettingsSectionEdit.Name, notFoundOn403)
	table.MustSet(OpVAppTemplateMetadataGet.Name, genericOn400)
	table.MustSet(OpVAppTemplateMetadataMerge.Name, genericOn400)
	table.MustSet(OpVAppTemplateMetadataEntryGet.Name, emptyOn403)
	table.MustSet(OpVAppTemplateMetadataEntryPut.Name, genericOn400)
	table.MustSet(OpVAppTemplateMetadataEntryRemove.Name, notFoundOn403)
	table.MustSet(OpVAppTemplateNetworkConfigSectionGet.Name, genericOn400)
	table.MustSet(OpVAppTemplateNetworkConfigSectionEdit.Name, genericOn400)
	table.MustSet(OpVAppTemplateOwnerGet.Name, emptyOn403)

	for _, op := range VmOperations() {
		if op.Method == http.MethodGet || op.Name == OpVmScreenTicketAcquire.Name {
			table.MustSet(op.Name, vmReadPolicy)
			continue
		}
		table.MustSet(op.Name, vmWritePolicy)
	}
	return table
}
