package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-clouds/adapters/gocommand"
	"github.com/goliatone/go-clouds/auth"
	cloudscommand "github.com/goliatone/go-clouds/command"
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
	cloudsquery "github.com/goliatone/go-clouds/query"
	"github.com/urfave/cli/v2"
)

func credentialFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "provider endpoint, defaults to the configured or published one",
			EnvVars: []string{"CLOUDS_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "login identity, e.g. tenant:user or user@organization",
			Required: required,
			EnvVars:  []string{"CLOUDS_IDENTITY"},
		},
		&cli.StringFlag{
			Name:     "credential",
			Usage:    "password or api key",
			Required: required,
			EnvVars:  []string{"CLOUDS_CREDENTIAL"},
		},
	}
}

func credentialsFromFlags(ctx *cli.Context) core.Credentials {
	return core.Credentials{
		Identity:   ctx.String("identity"),
		Credential: ctx.String("credential"),
	}
}

// NewProvidersCommand returns the command listing registered providers.
func NewProvidersCommand(opts runtimeOptions) *cli.Command {
	return &cli.Command{
		Name:    "providers",
		Usage:   "provider operations",
		Aliases: []string{"p"},
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Usage:   "list registered providers",
				Aliases: []string{"ls"},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "api",
						Usage: "only list providers speaking this api, e.g. openstack-keystone",
					},
				},
				Action: func(ctx *cli.Context) error {
					return withRuntime(ctx, opts, func(rt *runtime) error {
						items, err := gocommand.Query[cloudsquery.ListProvidersMessage, []core.ProviderMetadata](ctx.Context, cloudsquery.ListProvidersMessage{API: ctx.String("api")})
						if err != nil {
							return err
						}
						return writeYAML(ctx.App.Writer, newProviderViews(items, rt.hooks.PackOf))
					})
				},
			},
		},
	}
}

// NewAuthenticateCommand returns the command exchanging credentials for an
// access token.
func NewAuthenticateCommand(opts runtimeOptions) *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:     "provider",
			Usage:    "provider id",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "show-token",
			Usage: "print the token instead of redacting it",
		},
		&cli.BoolFlag{
			Name:  "from-env",
			Usage: "read Keystone credentials and endpoint from the OS_* environment",
		},
	}, credentialFlags(false)...)

	return &cli.Command{
		Name:    "authenticate",
		Usage:   "authenticate against a provider",
		Aliases: []string{"auth"},
		Flags:   flags,
		Action: func(ctx *cli.Context) error {
			request, err := authenticateRequest(ctx)
			if err != nil {
				return err
			}
			return withRuntime(ctx, opts, func(rt *runtime) error {
				access, ok, err := gocommand.DispatchWithResult[cloudscommand.AuthenticateMessage, core.Access](ctx.Context, cloudscommand.AuthenticateMessage{
					Request: request,
				})
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("authenticate returned no access")
				}
				rt.logger.Info("authenticated", "provider_id", access.ProviderID())
				return writeYAML(ctx.App.Writer, newAccessView(access, ctx.Bool("show-token")))
			})
		},
	}
}

// authenticateRequest takes credentials from the flags or, with --from-env,
// from the OS_* variables. Flags win over the environment endpoint.
func authenticateRequest(ctx *cli.Context) (core.AuthenticateRequest, error) {
	request := core.AuthenticateRequest{
		ProviderID:  ctx.String("provider"),
		Endpoint:    ctx.String("endpoint"),
		Credentials: credentialsFromFlags(ctx),
	}
	if !ctx.Bool("from-env") {
		if strings.TrimSpace(request.Credentials.Identity) == "" || request.Credentials.Credential == "" {
			return request, fmt.Errorf("--identity and --credential are required unless --from-env is set")
		}
		return request, nil
	}

	detected, err := auth.DetectOpenStackCredentials(nil)
	if err != nil {
		return request, err
	}
	request.Credentials = detected.Credentials
	if strings.TrimSpace(request.Endpoint) == "" {
		request.Endpoint = detected.Endpoint
	}
	return request, nil
}

func resourceURI(ctx *cli.Context, build func(string) string) (string, error) {
	if uri := strings.TrimSpace(ctx.String("uri")); uri != "" {
		return uri, nil
	}
	if id := strings.TrimSpace(ctx.String("id")); id != "" {
		return build(id), nil
	}
	return "", fmt.Errorf("either --uri or --id is required")
}

func resourceFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  "uri",
			Usage: "resource href",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "resource id, resolved against the endpoint",
		},
	}, credentialFlags(true)...)
}

// NewVAppTemplateCommand returns the vApp template commands of vCloud
// Director.
func NewVAppTemplateCommand(opts runtimeOptions) *cli.Command {
	return &cli.Command{
		Name:    "vapp-template",
		Usage:   "vCloud Director vApp template operations",
		Aliases: []string{"vt"},
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "show a vApp template",
				Flags: resourceFlags(),
				Action: func(ctx *cli.Context) error {
					return withRuntime(ctx, opts, func(rt *runtime) error {
						client, err := rt.directorClient(ctx.String("endpoint"), credentialsFromFlags(ctx))
						if err != nil {
							return err
						}
						uri, err := resourceURI(ctx, client.VAppTemplateURI)
						if err != nil {
							return err
						}
						if err := gocommand.AddQuery[cloudsquery.GetVAppTemplateMessage, *director.VAppTemplate](
							rt.bus, cloudsquery.NewGetVAppTemplateQuery(client.VAppTemplateAPI()),
						); err != nil {
							return err
						}
						template, err := gocommand.Query[cloudsquery.GetVAppTemplateMessage, *director.VAppTemplate](ctx.Context, cloudsquery.GetVAppTemplateMessage{URI: uri})
						if err != nil {
							return err
						}
						if template == nil {
							return writeYAML(ctx.App.Writer, notFoundView{URI: uri})
						}
						return writeYAML(ctx.App.Writer, newVAppTemplateView(template))
					})
				},
			},
		},
	}
}

// NewVmCommand returns the vm commands of vCloud Director.
func NewVmCommand(opts runtimeOptions) *cli.Command {
	return &cli.Command{
		Name:  "vm",
		Usage: "vCloud Director vm operations",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "show a vm",
				Flags: resourceFlags(),
				Action: func(ctx *cli.Context) error {
					return withRuntime(ctx, opts, func(rt *runtime) error {
						client, err := rt.directorClient(ctx.String("endpoint"), credentialsFromFlags(ctx))
						if err != nil {
							return err
						}
						uri, err := resourceURI(ctx, client.VmURI)
						if err != nil {
							return err
						}
						if err := gocommand.AddQuery[cloudsquery.GetVmMessage, *director.Vm](
							rt.bus, cloudsquery.NewGetVmQuery(client.VmAPI()),
						); err != nil {
							return err
						}
						vm, err := gocommand.Query[cloudsquery.GetVmMessage, *director.Vm](ctx.Context, cloudsquery.GetVmMessage{URI: uri})
						if err != nil {
							return err
						}
						if vm == nil {
							return writeYAML(ctx.App.Writer, notFoundView{URI: uri})
						}
						return writeYAML(ctx.App.Writer, newVmView(vm))
					})
				},
			},
		},
	}
}

func nodeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "node",
		Usage:    "node id",
		Required: true,
	}
}

// NewNodeLoginCommand returns the commands managing remembered node logins.
func NewNodeLoginCommand(opts runtimeOptions) *cli.Command {
	return &cli.Command{
		Name:    "node-login",
		Usage:   "node login operations",
		Aliases: []string{"nl"},
		Subcommands: []*cli.Command{
			{
				Name:  "put",
				Usage: "remember the login of a node",
				Flags: []cli.Flag{
					nodeFlag(),
					&cli.StringFlag{
						Name:     "user",
						Usage:    "login user",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "login password",
						EnvVars: []string{"CLOUDS_NODE_PASSWORD"},
					},
					&cli.StringFlag{
						Name:  "private-key-file",
						Usage: "path to a private key",
					},
					&cli.BoolFlag{
						Name:  "sudo",
						Usage: "authenticate sudo with the password",
					},
				},
				Action: func(ctx *cli.Context) error {
					credentials := compute.LoginCredentials{
						User:             ctx.String("user"),
						Password:         ctx.String("password"),
						AuthenticateSudo: ctx.Bool("sudo"),
					}
					if path := ctx.String("private-key-file"); path != "" {
						key, err := os.ReadFile(path)
						if err != nil {
							return err
						}
						credentials.PrivateKey = string(key)
					}
					return withRuntime(ctx, opts, func(rt *runtime) error {
						nodeID := ctx.String("node")
						if err := gocommand.Dispatch(ctx.Context, cloudscommand.PutNodeLoginMessage{
							NodeID:      nodeID,
							Credentials: credentials,
						}); err != nil {
							return err
						}
						return writeYAML(ctx.App.Writer, newLoginView(nodeID, true, credentials))
					})
				},
			},
			{
				Name:  "get",
				Usage: "show the remembered login of a node",
				Flags: []cli.Flag{nodeFlag()},
				Action: func(ctx *cli.Context) error {
					return withRuntime(ctx, opts, func(rt *runtime) error {
						login, err := gocommand.Query[cloudsquery.GetNodeLoginMessage, cloudsquery.NodeLogin](ctx.Context, cloudsquery.GetNodeLoginMessage{NodeID: ctx.String("node")})
						if err != nil {
							return err
						}
						return writeYAML(ctx.App.Writer, newStoredLoginView(login))
					})
				},
			},
			{
				Name:  "delete",
				Usage: "forget the login of a node",
				Flags: []cli.Flag{nodeFlag()},
				Action: func(ctx *cli.Context) error {
					return withRuntime(ctx, opts, func(rt *runtime) error {
						return gocommand.Dispatch(ctx.Context, cloudscommand.DeleteNodeLoginMessage{NodeID: ctx.String("node")})
					})
				},
			},
			{
				Name:  "resolve",
				Usage: "resolve the login used for a node",
				Flags: []cli.Flag{
					nodeFlag(),
					&cli.StringFlag{
						Name:  "provider",
						Usage: "provider whose OS family defaults apply",
					},
					&cli.StringFlag{
						Name:  "os-family",
						Usage: "OS family of the node image, e.g. UBUNTU",
					},
				},
				Action: func(ctx *cli.Context) error {
					return withRuntime(ctx, opts, func(rt *runtime) error {
						providerID := ctx.String("provider")
						if err := gocommand.AddCommand[cloudscommand.ResolveNodeLoginMessage](
							rt.bus, cloudscommand.NewResolveNodeLoginCommand(rt.loginResolver(providerID)),
						); err != nil {
							return err
						}
						node := compute.Node{
							ID:         ctx.String("node"),
							ProviderID: providerID,
							Image: compute.Image{
								OsFamily: compute.OsFamily(strings.ToUpper(strings.TrimSpace(ctx.String("os-family")))),
							},
						}
						login, ok, err := gocommand.DispatchWithResult[cloudscommand.ResolveNodeLoginMessage, compute.LoginCredentials](ctx.Context, cloudscommand.ResolveNodeLoginMessage{Node: node})
						if err != nil {
							return err
						}
						return writeYAML(ctx.App.Writer, newLoginView(node.ID, ok, login))
					})
				},
			},
		},
	}
}
