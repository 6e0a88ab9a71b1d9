package director

import (
	"context"

	"github.com/goliatone/go-clouds/core"
)

// VmAPI operates on a single virtual machine by href. Reads resolve to nil
// when the VM is hidden or gone; mutations report it as not found.
type VmAPI struct {
	dispatcher *core.Dispatcher
}

func NewVmAPI(dispatcher *core.Dispatcher) *VmAPI {
	return &VmAPI{dispatcher: dispatcher}
}

func (a *VmAPI) vm(uri string) (resource, error) {
	return newResource(a.dispatcher, uri, MediaTypeVm)
}

// GetVm returns nil without error when the VM is not visible.
func (a *VmAPI) GetVm(ctx context.Context, uri string) (*Vm, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[Vm](ctx, r, OpVmGet, nil)
}

func (a *VmAPI) EditVm(ctx context.Context, uri string, vm *Vm) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmEdit, optional(vm))
}

func (a *VmAPI) RemoveVm(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmRemove, nil)
}

func (a *VmAPI) Consolidate(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmConsolidate, nil, "action", "consolidate")
}

func (a *VmAPI) Deploy(ctx context.Context, uri string, params *DeployVAppParams) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmDeploy, optional(params), "action", "deploy")
}

func (a *VmAPI) DiscardSuspendedState(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmDiscardSuspendedState, nil, "action", "discardSuspendedState")
}

func (a *VmAPI) InstallVMwareTools(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmInstallVMwareTools, nil, "action", "installVMwareTools")
}

func (a *VmAPI) Relocate(ctx context.Context, uri string, params *RelocateParams) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmRelocate, optional(params), "action", "relocate")
}

func (a *VmAPI) Undeploy(ctx context.Context, uri string, params *UndeployVAppParams) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmUndeploy, optional(params), "action", "undeploy")
}

func (a *VmAPI) UpgradeHardwareVersion(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmUpgradeHardwareVersion, nil, "action", "upgradeHardwareVersion")
}

func (a *VmAPI) PowerOff(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmPowerOff, nil, "power", "action", "powerOff")
}

func (a *VmAPI) PowerOn(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmPowerOn, nil, "power", "action", "powerOn")
}

func (a *VmAPI) Reboot(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmReboot, nil, "power", "action", "reboot")
}

func (a *VmAPI) Reset(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmReset, nil, "power", "action", "reset")
}

func (a *VmAPI) Shutdown(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmShutdown, nil, "power", "action", "shutdown")
}

func (a *VmAPI) Suspend(ctx context.Context, uri string) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmSuspend, nil, "power", "action", "suspend")
}

func (a *VmAPI) GetGuestCustomizationSection(ctx context.Context, uri string) (*GuestCustomizationSection, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[GuestCustomizationSection](ctx, r, OpVmGuestCustomizationSectionGet, nil, "guestCustomizationSection")
}

func (a *VmAPI) EditGuestCustomizationSection(ctx context.Context, uri string, section *GuestCustomizationSection) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmGuestCustomizationSectionEdit, optional(section), "guestCustomizationSection")
}

func (a *VmAPI) EjectMedia(ctx context.Context, uri string, params *MediaInsertOrEjectParams) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmEjectMedia, optional(params), "media", "action", "ejectMedia")
}

func (a *VmAPI) InsertMedia(ctx context.Context, uri string, params *MediaInsertOrEjectParams) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmInsertMedia, optional(params), "media", "action", "insertMedia")
}

func (a *VmAPI) GetNetworkConnectionSection(ctx context.Context, uri string) (*NetworkConnectionSection, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[NetworkConnectionSection](ctx, r, OpVmNetworkConnectionSectionGet, nil, "networkConnectionSection")
}

func (a *VmAPI) EditNetworkConnectionSection(ctx context.Context, uri string, section *NetworkConnectionSection) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmNetworkConnectionSectionEdit, optional(section), "networkConnectionSection")
}

func (a *VmAPI) GetOperatingSystemSection(ctx context.Context, uri string) (*OperatingSystemSection, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[OperatingSystemSection](ctx, r, OpVmOperatingSystemSectionGet, nil, "operatingSystemSection")
}

func (a *VmAPI) EditOperatingSystemSection(ctx context.Context, uri string, section *OperatingSystemSection) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmOperatingSystemSectionEdit, optional(section), "operatingSystemSection")
}

func (a *VmAPI) GetProductSections(ctx context.Context, uri string) (*ProductSectionList, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[ProductSectionList](ctx, r, OpVmProductSectionsGet, nil, "productSections")
}

func (a *VmAPI) EditProductSections(ctx context.Context, uri string, sections *ProductSectionList) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmProductSectionsEdit, optional(sections), "productSections")
}

// GetPendingQuestion returns nil without error when no question is pending.
func (a *VmAPI) GetPendingQuestion(ctx context.Context, uri string) (*VmPendingQuestion, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[VmPendingQuestion](ctx, r, OpVmQuestionGet, nil, "question")
}

func (a *VmAPI) AnswerQuestion(ctx context.Context, uri string, answer *VmQuestionAnswer) error {
	r, err := a.vm(uri)
	if err != nil {
		return err
	}
	return invokeVoid(ctx, r, OpVmQuestionAnswer, optional(answer), "question", "action", "answer")
}

func (a *VmAPI) GetRuntimeInfoSection(ctx context.Context, uri string) (*RuntimeInfoSection, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RuntimeInfoSection](ctx, r, OpVmRuntimeInfoSectionGet, nil, "runtimeInfoSection")
}

// GetScreenImage returns the console thumbnail bytes and their media type.
func (a *VmAPI) GetScreenImage(ctx context.Context, uri string) ([]byte, string, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, "", err
	}
	return core.InvokeRaw(ctx, r.dispatcher, core.OperationRequest{
		Operation: OpVmScreenImageGet,
		URI:       r.uri("screen"),
	})
}

func (a *VmAPI) GetScreenTicket(ctx context.Context, uri string) (*ScreenTicket, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[ScreenTicket](ctx, r, OpVmScreenTicketAcquire, nil, "screen", "action", "acquireTicket")
}

func (a *VmAPI) GetVirtualHardwareSection(ctx context.Context, uri string) (*VirtualHardwareSection, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[VirtualHardwareSection](ctx, r, OpVmVirtualHardwareSectionGet, nil, "virtualHardwareSection")
}

func (a *VmAPI) EditVirtualHardwareSection(ctx context.Context, uri string, section *VirtualHardwareSection) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmVirtualHardwareSectionEdit, optional(section), "virtualHardwareSection")
}

func (a *VmAPI) GetVirtualHardwareSectionCpu(ctx context.Context, uri string) (*RasdItem, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RasdItem](ctx, r, OpVmVirtualHardwareSectionCpuGet, nil, "virtualHardwareSection", "cpu")
}

func (a *VmAPI) EditVirtualHardwareSectionCpu(ctx context.Context, uri string, item *RasdItem) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmVirtualHardwareSectionCpuEdit, optional(item), "virtualHardwareSection", "cpu")
}

func (a *VmAPI) GetVirtualHardwareSectionDisks(ctx context.Context, uri string) (*RasdItemsList, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RasdItemsList](ctx, r, OpVmVirtualHardwareSectionDisksGet, nil, "virtualHardwareSection", "disks")
}

func (a *VmAPI) EditVirtualHardwareSectionDisks(ctx context.Context, uri string, items *RasdItemsList) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmVirtualHardwareSectionDisksEdit, optional(items), "virtualHardwareSection", "disks")
}

func (a *VmAPI) GetVirtualHardwareSectionMedia(ctx context.Context, uri string) (*RasdItemsList, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RasdItemsList](ctx, r, OpVmVirtualHardwareSectionMediaGet, nil, "virtualHardwareSection", "media")
}

func (a *VmAPI) GetVirtualHardwareSectionMemory(ctx context.Context, uri string) (*RasdItem, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RasdItem](ctx, r, OpVmVirtualHardwareSectionMemoryGet, nil, "virtualHardwareSection", "memory")
}

func (a *VmAPI) EditVirtualHardwareSectionMemory(ctx context.Context, uri string, item *RasdItem) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmVirtualHardwareSectionMemoryEdit, optional(item), "virtualHardwareSection", "memory")
}

func (a *VmAPI) GetVirtualHardwareSectionNetworkCards(ctx context.Context, uri string) (*RasdItemsList, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RasdItemsList](ctx, r, OpVmVirtualHardwareSectionNetworkCardsGet, nil, "virtualHardwareSection", "networkCards")
}

func (a *VmAPI) EditVirtualHardwareSectionNetworkCards(ctx context.Context, uri string, items *RasdItemsList) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmVirtualHardwareSectionNetworkCardsEdit, optional(items), "virtualHardwareSection", "networkCards")
}

func (a *VmAPI) GetVirtualHardwareSectionSerialPorts(ctx context.Context, uri string) (*RasdItemsList, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invoke[RasdItemsList](ctx, r, OpVmVirtualHardwareSectionSerialPortsGet, nil, "virtualHardwareSection", "serialPorts")
}

func (a *VmAPI) EditVirtualHardwareSectionSerialPorts(ctx context.Context, uri string, items *RasdItemsList) (*Task, error) {
	r, err := a.vm(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVmVirtualHardwareSectionSerialPortsEdit, optional(items), "virtualHardwareSection", "serialPorts")
}
