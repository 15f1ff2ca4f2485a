package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
	"github.com/taskbell/taskbell/pkg/bellcli"
)

var (
	addInterval    int
	addDescription string
	addCron        string

	addFlags = []cli.Flag{
		cli.IntFlag{
			Name:        "interval, i",
			Usage:       "reminder interval in minutes (default: 5)",
			Destination: &addInterval,
		},
		cli.StringFlag{
			Name:        "description, d",
			Usage:       "free-form detail text shown with the reminder",
			Destination: &addDescription,
		},
		cli.StringFlag{
			Name:        "cron, c",
			Usage:       "cron expression overriding the interval cadence",
			Destination: &addCron,
		},
	}
)

func add(ctx *cli.Context) error {
	title := ctx.Args().First()
	if title == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no task title provided"),
		)
	} else if title == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newDaemonClient(ctx, "add")
	if client == nil {
		return nil
	}
	defer client.Close()
	r, err := client.Create(title, addInterval, &bellcli.CreateOpts{
		Description: addDescription,
		Cron:        addCron,
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "add", "create_task", err)
		return nil
	}
	fmt.Printf("Added %q (%s)\n", r.Task.Title, r.Task.ID)
	printCadence(r.Task.IntervalMinutes, r.Task.Cron)
	return nil
}

func printCadence(intervalMinutes int, cron string) {
	if cron != "" {
		fmt.Printf("Rings on cron schedule %q\n", cron)
		return
	}
	fmt.Printf("Rings every %d minute(s)\n", intervalMinutes)
}
