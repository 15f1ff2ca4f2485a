// Package common provides shared helpers for the taskbell CLI commands:
// countdown bar setup, error printing and help display.
package common

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// VersionCmdStr holds the formatted version string displayed by the
// version command. Execute populates it with build-time information.
var VersionCmdStr string

var (
	showAppHelpAndExit = cli.ShowAppHelpAndExit
	showCommandHelp    = cli.ShowCommandHelp
)

// InitCountdownBar creates a progress bar tracking the seconds remaining
// until a task's next reminder. The caller advances it with SetCurrent
// and refills it after each fire.
func InitCountdownBar(p *mpb.Progress, name string, totalSeconds int64) *mpb.Bar {
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")

	bar := p.New(totalSeconds,
		barStyle,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.Name("next reminder in"),
		),
		mpb.AppendDecorators(
			decor.Any(func(s decor.Statistics) string {
				left := s.Total - s.Current
				if left < 0 {
					left = 0
				}
				return fmt.Sprintf("%dm%02ds", left/60, left%60)
			}),
		),
	)
	bar.SetTotal(totalSeconds, false)
	return bar
}

// Help displays help for the application or for the command named by the
// first argument.
func Help(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" || arg == "help" {
		fmt.Printf("%s %s\n", ctx.App.Name, ctx.App.Version)
		showAppHelpAndExit(ctx, 0)
		return nil
	}
	err := showCommandHelp(ctx, arg)
	if err != nil {
		return err
	}
	return PrintErrWithHelp(ctx, err)
}

// GetVersion prints the version string assembled at startup.
func GetVersion(ctx *cli.Context) error {
	fmt.Println(VersionCmdStr)
	return nil
}

// PrintRuntimeErr prints a command runtime error without aborting the
// CLI. The ctx parameter may be nil, in which case the binary name is
// taken from os.Args.
func PrintRuntimeErr(ctx *cli.Context, cmd, action string, err error) {
	if err == nil {
		fmt.Println("err is nil", "[", cmd, "|", action, "]")
		return
	}
	var name string
	if ctx != nil {
		name = ctx.App.HelpName
	} else {
		name = os.Args[0]
	}
	fmt.Printf("%s: %s[%s]: %s\n", name, cmd, action, err.Error())
}

// PrintErrWithCmdHelp prints the error followed by the current command's
// help text.
func PrintErrWithCmdHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(
		ctx,
		err,
		func() {
			if herr := showCommandHelp(ctx, ctx.Command.Name); herr != nil {
				fmt.Println(herr.Error())
			}
		},
	)
}

// PrintErrWithHelp prints the error followed by the application help.
func PrintErrWithHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(
		ctx,
		err,
		func() {
			showAppHelpAndExit(ctx, 1)
		},
	)
}

func printErrWithCallback(ctx *cli.Context, err error, callback func()) error {
	if err == nil {
		return nil
	}
	fmt.Printf("%s: %s\n", ctx.App.HelpName, err.Error())
	callback()
	return nil
}

// UsageErrorCallback is plugged into urfave/cli to surface bad flag usage
// with the relevant help text.
func UsageErrorCallback(ctx *cli.Context, err error, isSubcommand bool) error {
	if ctx.Command.Name != "" {
		return PrintErrWithCmdHelp(ctx, err)
	}
	return PrintErrWithHelp(ctx, err)
}
