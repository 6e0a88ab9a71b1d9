package query

import (
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[ListProvidersMessage, []core.ProviderMetadata]  = (*ListProvidersQuery)(nil)
	_ gocmd.Querier[GetVAppTemplateMessage, *director.VAppTemplate] = (*GetVAppTemplateQuery)(nil)
	_ gocmd.Querier[GetVmMessage, *director.Vm]                     = (*GetVmQuery)(nil)
	_ gocmd.Querier[GetNodeLoginMessage, NodeLogin]                 = (*GetNodeLoginQuery)(nil)

	_ ProviderLister     = (*core.ProviderRegistry)(nil)
	_ VAppTemplateReader = (*director.VAppTemplateAPI)(nil)
	_ VmReader           = (*director.VmAPI)(nil)
)
