package cmd

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`

const DESCRIPTION = `
Taskbell is a recurring task reminder for your terminal and browser.
Add tasks with an interval or a cron expression and the taskbell
daemon rings you when they are due, on every attached client.
`

const AddDescription = `
The add command registers a new recurring task with the daemon.
Pass the task title as the argument and the reminder cadence via
flags, e.g.:

        taskbell add "drink water" -i 30
        taskbell add "daily standup" -c "30 9 * * 1-5"
`

const EditDescription = `
The edit command changes a task's title, description or cadence.
Editing restarts the task's countdown from now.
`

const RemoveDescription = `
The remove command deletes a task and disarms its reminder.
`

const MoveDescription = `
The move command reorders the task list by placing one task
before another, e.g.:

        taskbell move <task-id> <before-task-id>
`

const ListDescription = `
The list command displays every registered task in display order,
with its cadence and identifier.
`

const WatchDescription = `
The watch command attaches to the daemon and prints reminders as
they fire. Watch a single task by passing its id, or every task by
passing none. For interval tasks a countdown bar tracks the time
until the next reminder.
`

const FlushDescription = `
The flush command deletes every registered task and disarms all
reminders.
`
