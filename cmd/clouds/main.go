package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

type configKey struct{}

func main() {
	if err := newApp(runtimeOptions{}).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(opts runtimeOptions) *cli.App {
	return &cli.App{
		Name:                 "clouds",
		EnableBashCompletion: true,
		Usage:                "authenticate against cloud providers and inspect their resources",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every provider call at debug level and enable database query logging",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to config file",
				Aliases: []string{"file"},
				EnvVars: []string{"CLOUDS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "database-driver",
				Usage:   "database driver, postgres or sqlite3",
				EnvVars: []string{"CLOUDS_DATABASE_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "database-dsn",
				Usage:   "database dsn for persisted node logins",
				EnvVars: []string{"CLOUDS_DATABASE_DSN"},
			},
			&cli.StringFlag{
				Name:    "app-key",
				Usage:   "key used to encrypt persisted node logins",
				EnvVars: []string{"CLOUDS_APP_KEY"},
			},
		},
		Before: func(ctx *cli.Context) error {
			conf := DefaultConfig()
			if path := ctx.String("config"); path != "" {
				parsed, err := Parse(path)
				if err != nil {
					return fmt.Errorf("cannot parse config: %w", err)
				}
				conf = parsed
			}

			if ctx.IsSet("debug") {
				conf.Debug = ctx.Bool("debug")
			}
			if ctx.IsSet("database-driver") {
				conf.Database.Driver = ctx.String("database-driver")
			}
			if ctx.IsSet("database-dsn") {
				conf.Database.DSN = ctx.String("database-dsn")
			}
			if ctx.IsSet("app-key") {
				conf.Secrets.AppKey = ctx.String("app-key")
			}
			if err := conf.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx.Context = context.WithValue(ctx.Context, configKey{}, conf)
			return nil
		},
		Commands: []*cli.Command{
			NewProvidersCommand(opts),
			NewAuthenticateCommand(opts),
			NewVAppTemplateCommand(opts),
			NewVmCommand(opts),
			NewNodeLoginCommand(opts),
			NewDatabaseCommand(),
		},
	}
}

func getConfig(ctx *cli.Context) *Config {
	conf, ok := ctx.Context.Value(configKey{}).(*Config)
	if !ok || conf == nil {
		return DefaultConfig()
	}
	return conf
}

// withRuntime builds the service graph for one action and releases it when
// the action returns.
func withRuntime(ctx *cli.Context, opts runtimeOptions, fn func(*runtime) error) error {
	rt, err := newRuntime(ctx.Context, getConfig(ctx), opts, ctx.App.ErrWriter)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}
