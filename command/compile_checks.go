package command

import (
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Commander[AuthenticateMessage]     = (*AuthenticateCommand)(nil)
	_ gocmd.Commander[DispatchMessage]         = (*DispatchCommand)(nil)
	_ gocmd.Commander[PutNodeLoginMessage]     = (*PutNodeLoginCommand)(nil)
	_ gocmd.Commander[DeleteNodeLoginMessage]  = (*DeleteNodeLoginCommand)(nil)
	_ gocmd.Commander[ResolveNodeLoginMessage] = (*ResolveNodeLoginCommand)(nil)

	_ AuthenticationService = (*core.Service)(nil)
	_ OperationDispatcher   = (*core.Dispatcher)(nil)
	_ LoginResolver         = (*compute.LoginResolver)(nil)
)
