package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
)

var (
	forceFlush bool

	flsFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "force, f",
			Usage:       "use this flag to skip the confirmation prompt (default: false)",
			Destination: &forceFlush,
		},
	}
)

func flush(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if !confirm(command("flush"), forceFlush) {
		return nil
	}
	client := newDaemonClient(ctx, "flush")
	if client == nil {
		return nil
	}
	defer client.Close()
	if _, err := client.Flush(); err != nil {
		common.PrintRuntimeErr(ctx, "flush", "flush", err)
		return nil
	}
	fmt.Println("Flushed all tasks, every reminder disarmed!")
	return nil
}
