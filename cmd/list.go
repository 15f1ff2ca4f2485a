package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
	"github.com/taskbell/taskbell/pkg/belllib"
)

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newDaemonClient(ctx, "list")
	if client == nil {
		return nil
	}
	defer client.Close()
	l, err := client.List()
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "get_list", err)
		return nil
	}
	if len(l.Tasks) == 0 {
		fmt.Println("taskbell: no tasks registered")
		return nil
	}
	fmt.Println(renderTaskTable(l.Tasks))
	return nil
}

func renderTaskTable(tasks []belllib.Task) string {
	txt := "Here are your tasks:"
	txt += "\n\n--------------------------------------------------------------"
	txt += "\n|Num|\t         Title         |    Task Id    |   Cadence   |"
	txt += "\n|---|--------------------------|---------------|-------------|"
	for i, t := range tasks {
		title := t.Title
		n := len(title)
		switch {
		case n > 24:
			title = title[:21] + "..."
		case n < 24:
			title = beaut(title, 24)
		}
		txt += fmt.Sprintf("\n| %d | %s | %s | %s |", i+1, title, t.ID, beaut(cadence(t), 11))
	}
	txt += "\n--------------------------------------------------------------"
	return txt
}

func cadence(t belllib.Task) string {
	if t.Cron != "" {
		return t.Cron
	}
	return fmt.Sprintf("every %dm", t.IntervalMinutes)
}

func beaut(s string, n int) (b string) {
	n1 := len(s)
	if n1 >= n {
		return s
	}
	x := n - n1
	x1 := x / 2
	w := string(
		replic(' ', x1),
	)
	b = w
	b += s
	b += w
	if x%2 != 0 {
		b += " "
	}
	return
}

func replic[aT any](v aT, n int) []aT {
	a := make([]aT, n)
	for i := range a {
		a[i] = v
	}
	return a
}
