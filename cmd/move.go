package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
)

func move(ctx *cli.Context) error {
	movedId := ctx.Args().First()
	if movedId == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	targetId := ctx.Args().Get(1)
	if movedId == "" || targetId == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("need a task id and the id to place it before"),
		)
	}
	client := newDaemonClient(ctx, "move")
	if client == nil {
		return nil
	}
	defer client.Close()
	r, err := client.Reorder(movedId, targetId)
	if err != nil {
		common.PrintRuntimeErr(ctx, "move", "reorder_tasks", err)
		return nil
	}
	if !r.Moved {
		fmt.Println("Task is already in place.")
		return nil
	}
	fmt.Printf("Moved %s before %s\n", movedId, targetId)
	return nil
}
