package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
	"github.com/taskbell/taskbell/pkg/bellcli"
	"github.com/taskbell/taskbell/pkg/belllib"
)

var (
	editTitle       string
	editInterval    int
	editDescription string
	editCron        string

	editFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "title, t",
			Usage:       "new task title",
			Destination: &editTitle,
		},
		cli.IntFlag{
			Name:        "interval, i",
			Usage:       "new reminder interval in minutes",
			Destination: &editInterval,
		},
		cli.StringFlag{
			Name:        "description, d",
			Usage:       "new detail text",
			Destination: &editDescription,
		},
		cli.StringFlag{
			Name:        "cron, c",
			Usage:       "new cron expression (overrides interval)",
			Destination: &editCron,
		},
	}
)

func edit(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no task id provided"),
		)
	} else if id == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newDaemonClient(ctx, "edit")
	if client == nil {
		return nil
	}
	defer client.Close()

	current, err := findTask(client, id)
	if err != nil {
		common.PrintRuntimeErr(ctx, "edit", "find_task", err)
		return nil
	}

	// Unset flags keep the task's current values.
	title := current.Title
	if ctx.IsSet("title") || ctx.IsSet("t") {
		title = editTitle
	}
	interval := current.IntervalMinutes
	if ctx.IsSet("interval") || ctx.IsSet("i") {
		interval = editInterval
	}
	description := current.Description
	if ctx.IsSet("description") || ctx.IsSet("d") {
		description = editDescription
	}
	cron := current.Cron
	if ctx.IsSet("cron") || ctx.IsSet("c") {
		cron = editCron
	}

	r, err := client.Update(id, title, interval, &bellcli.CreateOpts{
		Description: description,
		Cron:        cron,
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "edit", "update_task", err)
		return nil
	}
	fmt.Printf("Updated %q (%s), countdown restarted\n", r.Task.Title, r.Task.ID)
	printCadence(r.Task.IntervalMinutes, r.Task.Cron)
	return nil
}

func findTask(client *bellcli.Client, id string) (*belllib.Task, error) {
	l, err := client.List()
	if err != nil {
		return nil, err
	}
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return &l.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s not found", id)
}
