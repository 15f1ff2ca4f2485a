package cmd

import (
	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
	"github.com/taskbell/taskbell/pkg/bellcli"
)

// newDaemonClient spawns the daemon if it is not running and connects to
// it. Errors are printed in place; a nil client means the command should
// bail out quietly.
func newDaemonClient(ctx *cli.Context, cmd string) *bellcli.Client {
	if err := bellcli.EnsureDaemon(); err != nil {
		common.PrintRuntimeErr(ctx, cmd, "ensure_daemon", err)
		return nil
	}
	client, err := bellcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, cmd, "new_client", err)
		return nil
	}
	client.CheckVersionMismatch(currentBuildArgs.Version)
	return client
}
