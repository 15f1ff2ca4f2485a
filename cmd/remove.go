package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
)

func remove(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no task id provided"),
		)
	} else if id == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newDaemonClient(ctx, "remove")
	if client == nil {
		return nil
	}
	defer client.Close()
	if _, err := client.Delete(id); err != nil {
		common.PrintRuntimeErr(ctx, "remove", "delete_task", err)
		return nil
	}
	fmt.Printf("Removed %s\n", id)
	return nil
}
