// Command pm is the CLI front end for the local password store: init,
// add, show, clip, ls, otp, backup, and logs.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/logging"
)

type appCtxKey struct{}

// appContext is threaded through every command via context.Context.
type appContext struct {
	Log *slog.Logger
}

func withLogger(ctx context.Context, a *appContext) context.Context {
	return context.WithValue(ctx, appCtxKey{}, a)
}

func mustApp(ctx context.Context) *appContext {
	a, ok := ctx.Value(appCtxKey{}).(*appContext)
	if !ok || a == nil {
		panic("pm: command ran without appContext wired in Before")
	}
	return a
}

func main() {
	logger, _ := logging.NewFromEnv()

	app := &cli.Command{
		Name:  "pm",
		Usage: "a local, encrypted password manager",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return withLogger(ctx, &appContext{Log: logger}), nil
		},
		Commands: []*cli.Command{
			cmdInit(),
			cmdAdd(),
			cmdShow(),
			cmdClip(),
			cmdLs(),
			cmdOTP(),
			cmdBackup(),
			cmdLogs(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		printErr(err)
		os.Exit(1)
	}
}
