package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/taskbell/taskbell/cmd/common"
	tcommon "github.com/taskbell/taskbell/common"
)

var (
	watchSilent bool
	watchNoBar  bool

	watchFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "silent, s",
			Usage:       "do not ring the terminal bell on reminders (default: false)",
			Destination: &watchSilent,
		},
		cli.BoolFlag{
			Name:        "no-bar, n",
			Usage:       "disable the countdown bar (default: false)",
			Destination: &watchNoBar,
		},
	}
)

func watch(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newDaemonClient(ctx, "watch")
	if client == nil {
		return nil
	}
	if _, err := client.Attach(id); err != nil {
		common.PrintRuntimeErr(ctx, "watch", "attach", err)
		return nil
	}

	var restart, stopBar func()
	if id != "" && !watchNoBar {
		task, err := findTask(client, id)
		if err != nil {
			common.PrintRuntimeErr(ctx, "watch", "find_task", err)
			return nil
		}
		if task.Cron == "" {
			restart, stopBar = startCountdown(task.Title, task.IntervalMinutes)
			defer stopBar()
		}
	}

	if id == "" {
		fmt.Println("Watching all tasks, press Ctrl+C to stop.")
	} else {
		fmt.Printf("Watching %s, press Ctrl+C to stop.\n", id)
	}

	client.OnReminder(id, func(r *tcommon.ReminderResponse) error {
		if !watchSilent {
			fmt.Print("\a")
		}
		when := time.Unix(r.FiredAt, 0).Format("15:04:05")
		if r.Task.Description != "" {
			fmt.Printf("[%s] %s: %s\n", when, r.Task.Title, r.Task.Description)
		} else {
			fmt.Printf("[%s] %s\n", when, r.Task.Title)
		}
		if restart != nil {
			restart()
		}
		return nil
	})
	return client.Listen()
}

// startCountdown renders a bar draining toward the task's next reminder.
// The first returned func refills the bar after a fire, the second stops
// the ticker goroutine when the watch ends.
func startCountdown(title string, intervalMinutes int) (restart, stop func()) {
	total := int64(intervalMinutes) * 60
	p := mpb.New(mpb.WithWidth(48))
	bar := common.InitCountdownBar(p, title, total)

	var mu sync.Mutex
	epoch := time.Now()
	done := make(chan struct{})
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				mu.Lock()
				elapsed := int64(time.Since(epoch) / time.Second)
				mu.Unlock()
				if elapsed > total {
					elapsed = total
				}
				bar.SetCurrent(elapsed)
			}
		}
	}()
	restart = func() {
		mu.Lock()
		epoch = time.Now()
		mu.Unlock()
		bar.SetCurrent(0)
	}
	stop = func() {
		close(done)
		bar.Abort(true)
	}
	return restart, stop
}
