package director

import (
	"context"

	"github.com/goliatone/go-clouds/core"
)

// VAppTemplateAPI reads and changes vApp templates by href.
type VAppTemplateAPI struct {
	dispatcher *core.Dispatcher
}

func NewVAppTemplateAPI(dispatcher *core.Dispatcher) *VAppTemplateAPI {
	return &VAppTemplateAPI{dispatcher: dispatcher}
}

func (a *VAppTemplateAPI) template(uri string) (resource, error) {
	return newResource(a.dispatcher, uri, MediaTypeVAppTemplate)
}

// GetVAppTemplate returns the template at uri.
func (a *VAppTemplateAPI) GetVAppTemplate(ctx context.Context, uri string) (*VAppTemplate, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invoke[VAppTemplate](ctx, r, OpVAppTemplateGet, nil)
}

// EditVAppTemplate updates the name and description of the template.
func (a *VAppTemplateAPI) EditVAppTemplate(ctx context.Context, uri string, template *VAppTemplate) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateEdit, optional(template))
}

func (a *VAppTemplateAPI) RemoveVAppTemplate(ctx context.Context, uri string) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateRemove, nil)
}

func (a *VAppTemplateAPI) Consolidate(ctx context.Context, uri string) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateConsolidate, nil, "action", "consolidate")
}

// DisableDownload succeeds with no result.
func (a *VAppTemplateAPI) DisableDownload(ctx context.Context, uri string) error {
	r, err := a.template(uri)
	if err != nil {
		return err
	}
	return invokeVoid(ctx, r, OpVAppTemplateDisableDownload, nil, "action", "disableDownload")
}

func (a *VAppTemplateAPI) EnableDownload(ctx context.Context, uri string) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateEnableDownload, nil, "action", "enableDownload")
}

func (a *VAppTemplateAPI) Relocate(ctx context.Context, uri string, params *RelocateParams) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateRelocate, optional(params), "action", "relocate")
}

func (a *VAppTemplateAPI) GetCustomizationSection(ctx context.Context, uri string) (*CustomizationSection, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invoke[CustomizationSection](ctx, r, OpVAppTemplateCustomizationSectionGet, nil, "customizationSection")
}

func (a *VAppTemplateAPI) EditCustomizationSection(ctx context.Context, uri string, section *CustomizationSection) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateCustomizationSectionEdit, optional(section), "customizationSection")
}

func (a *VAppTemplateAPI) GetGuestCustomizationSection(ctx context.Context, uri string) (*GuestCustomizationSection, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invoke[GuestCustomizationSection](ctx, r, OpVAppTemplateGuestCustomizationSectionGet, nil, "guestCustomizationSection")
}

func (a *VAppTemplateAPI) EditGuestCustomizationSection(ctx context.Context, uri string, section *GuestCustomizationSection) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateGuestCustomizationSectionEdit, optional(section), "guestCustomizationSection")
}

func (a *VAppTemplateAPI) GetLeaseSettingsSection(ctx context.Context, uri string) (*LeaseSettingsSection, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invoke[LeaseSettingsSection](ctx, r, OpVAppTemplateLeaseSettingsSectionGet, nil, "leaseSettingsSection")
}

func (a *VAppTemplateAPI) EditLeaseSettingsSection(ctx context.Context, uri string, section *LeaseSettingsSection) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateLeaseSettingsSectionEdit, optional(section), "leaseSettingsSection")
}

func (a *VAppTemplateAPI) GetNetworkConfigSection(ctx context.Context, uri string) (*NetworkConfigSection, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invoke[NetworkConfigSection](ctx, r, OpVAppTemplateNetworkConfigSectionGet, nil, "networkConfigSection")
}

func (a *VAppTemplateAPI) EditNetworkConfigSection(ctx context.Context, uri string, section *NetworkConfigSection) (*Task, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateNetworkConfigSectionEdit, optional(section), "networkConfigSection")
}

// GetOwner returns nil without error when the caller may not see the owner.
func (a *VAppTemplateAPI) GetOwner(ctx context.Context, uri string) (*Owner, error) {
	r, err := a.template(uri)
	if err != nil {
		return nil, err
	}
	return invoke[Owner](ctx, r, OpVAppTemplateOwnerGet, nil, "owner")
}

func (a *VAppTemplateAPI) Metadata() *MetadataAPI {
	return &MetadataAPI{dispatcher: a.dispatcher}
}
