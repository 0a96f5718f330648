package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pomoterm/internal/bootstrap"
	sessiondto "pomoterm/internal/modules/session/dto"
	"pomoterm/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "pomoterm",
		Short:         "Pomodoro timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		// bare invocation opens the TUI
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir(), "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newNotifyCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the pomoterm terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Drive the work and break countdowns"}

	timer.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show both countdowns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			status, err := app.TimerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			for _, t := range status.Timers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%02d:%02d/%02d:%02d\trunning=%t",
					t.Mode, t.TimeLeftSeconds/60, t.TimeLeftSeconds%60,
					t.DurationSeconds/60, t.DurationSeconds%60, t.Running)
				if t.Goal != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\tgoal=%q", t.Goal)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	for _, verb := range []string{"start", "pause", "reset"} {
		verb := verb
		timer.AddCommand(&cobra.Command{
			Use:   verb + " <work|break>",
			Short: strings.ToUpper(verb[:1]) + verb[1:] + " a countdown",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := loadApp(*dataDir)
				if err != nil {
					return err
				}
				defer func() { _ = app.Close() }()
				var out any
				switch verb {
				case "start":
					out, err = app.TimerCLI.Start(context.Background(), args[0])
				case "pause":
					out, err = app.TimerCLI.Pause(context.Background(), args[0])
				case "reset":
					out, err = app.TimerCLI.Reset(context.Background(), args[0])
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %+v\n", verb, out)
				return nil
			},
		})
	}

	timer.AddCommand(&cobra.Command{
		Use:   "goal <work|break> <text>",
		Short: "Set the goal for a paused countdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.TimerCLI.SetGoal(context.Background(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s goal=%q\n", out.Mode, out.Goal)
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "tick <work|break>",
		Short: "Advance a running countdown by one second",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.TimerCLI.Tick(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s left=%ds running=%t", out.Timer.Mode, out.Timer.TimeLeftSeconds, out.Timer.Running)
			if out.Completed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " completed session=%s", out.SessionID)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	})

	return timer
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Session log lifecycle"}

	var kind, goal, start string
	var duration int
	record := &cobra.Command{
		Use:   "record --kind <work|break> --duration <seconds>",
		Short: "Append a finished session to the log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			var startAt time.Time
			if strings.TrimSpace(start) != "" {
				startAt, err = time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("--start must be RFC 3339: %w", err)
				}
			}
			out, err := app.SessionCLI.Record(context.Background(), kind, startAt, duration, goal)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s %s %ds\n", out.ID, out.Kind, out.DurationSeconds)
			return nil
		},
	}
	record.Flags().StringVar(&kind, "kind", "work", "session kind: work|break")
	record.Flags().IntVar(&duration, "duration", 0, "duration in seconds")
	record.Flags().StringVar(&goal, "goal", "", "session goal")
	record.Flags().StringVar(&start, "start", "", "start time, RFC 3339 (defaults to now)")
	session.AddCommand(record)

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.List(context.Background(), status)
			if err != nil {
				return err
			}
			if len(out.Sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range out.Sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%ds\t%s", s.ID, s.Kind, s.StartTime.Format(time.RFC3339), s.DurationSeconds, s.Status)
				if s.Goal != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%q", s.Goal)
				}
				if s.Status == "trashed" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%dd left", s.RemainingRetentionDays)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter: active|archived|trashed (empty for all)")
	session.AddCommand(list)

	var editID, editGoal, editStart string
	var editDuration int
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Edit a recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(editID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			input := sessiondto.EditInput{ID: editID}
			if cmd.Flags().Changed("goal") {
				input.Goal = &editGoal
			}
			if cmd.Flags().Changed("duration") {
				input.DurationSeconds = &editDuration
			}
			if cmd.Flags().Changed("start") {
				startAt, err := time.Parse(time.RFC3339, editStart)
				if err != nil {
					return fmt.Errorf("--start must be RFC 3339: %w", err)
				}
				input.StartTime = &startAt
			}
			out, err := app.SessionCLI.Edit(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "edited %s %s %ds goal=%q\n", out.ID, out.Kind, out.DurationSeconds, out.Goal)
			return nil
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "session id")
	edit.Flags().StringVar(&editGoal, "goal", "", "new goal")
	edit.Flags().IntVar(&editDuration, "duration", 0, "new duration in seconds")
	edit.Flags().StringVar(&editStart, "start", "", "new start time, RFC 3339")
	session.AddCommand(edit)

	session.AddCommand(newBulkCmd(dataDir, "archive", "Archive sessions",
		func(app *bootstrap.App, ids []string) (sessiondto.BulkOutput, error) {
			return app.SessionCLI.Archive(context.Background(), ids)
		}))
	session.AddCommand(newBulkCmd(dataDir, "trash", "Move sessions to the trash",
		func(app *bootstrap.App, ids []string) (sessiondto.BulkOutput, error) {
			return app.SessionCLI.Trash(context.Background(), ids)
		}))
	session.AddCommand(newBulkCmd(dataDir, "restore", "Restore sessions to active",
		func(app *bootstrap.App, ids []string) (sessiondto.BulkOutput, error) {
			return app.SessionCLI.Restore(context.Background(), ids)
		}))
	session.AddCommand(newBulkCmd(dataDir, "delete", "Permanently delete sessions",
		func(app *bootstrap.App, ids []string) (sessiondto.BulkOutput, error) {
			return app.SessionCLI.PermanentlyDelete(context.Background(), ids)
		}))

	session.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Purge trashed sessions past their retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.PurgeExpiredTrash(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "purged %d session(s)\n", len(out.PurgedIDs))
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the stats index from the session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.SessionCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show per-kind totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			for _, k := range out.Kinds {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tsessions=%d\ttotal=%ds\n", k.Kind, k.Sessions, k.TotalSeconds)
			}
			return nil
		},
	})

	return session
}

// newBulkCmd builds one id-list lifecycle subcommand. Every lifecycle verb
// prompts for confirmation unless --yes is passed.
func newBulkCmd(dataDir *string, verb, short string, run func(*bootstrap.App, []string) (sessiondto.BulkOutput, error)) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   verb + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("%s %d session(s)? [y/N] ", verb, len(args)))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := run(app, args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d session(s)\n", verb, out.Affected)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Query and export the session history"}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List one lifecycle bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.HistoryCLI.Query(context.Background(), filter)
			if err != nil {
				return err
			}
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing here")
				return nil
			}
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%ds", e.ID, e.Kind, e.StartTime.Format("2006-01-02 15:04"), e.DurationSeconds)
				if e.Goal != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%q", e.Goal)
				}
				if e.Status == "trashed" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%dd left", e.RemainingRetentionDays)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	list.Flags().StringVar(&filter, "filter", "active", "bucket: active|archived|trashed")
	history.AddCommand(list)

	history.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show per-kind totals outside the trash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.HistoryCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			for _, k := range out.Kinds {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tsessions=%d\ttotal=%ds\n", k.Kind, k.Sessions, k.TotalSeconds)
			}
			return nil
		},
	})

	var exportDir, exportTitle string
	export := &cobra.Command{
		Use:   "export --dir <path>",
		Short: "Write a markdown report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.HistoryCLI.Export(context.Background(), exportDir, exportTitle)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", out.Path)
			return nil
		},
	}
	export.Flags().StringVar(&exportDir, "dir", "", "output directory")
	export.Flags().StringVar(&exportTitle, "title", "", "report title")
	history.AddCommand(export)

	return history
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage the task list"}

	task.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.TaskCLI.Add(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", out.ID, out.Text)
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.TaskCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range out.Tasks {
				box := "[ ]"
				if t.Completed {
					box = "[x]"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", box, t.ID, t.Text)
			}
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TaskCLI.Toggle(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "toggled")
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TaskCLI.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	})

	return task
}

func newNotifyCmd(dataDir *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Notification channels"}

	var title, body string
	send := &cobra.Command{
		Use:   "send --title <text> --body <text>",
		Short: "Fan a notification out to every channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.NotifyCLI.Send(context.Background(), title, body)
			if err != nil {
				return err
			}
			for _, d := range out.Deliveries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s delivered=%t", d.Target, d.Delivered)
				if d.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", d.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	send.Flags().StringVar(&title, "title", "", "notification title")
	send.Flags().StringVar(&body, "body", "", "notification body")
	notify.AddCommand(send)

	notify.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifier plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			plugins, err := app.NotifyCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	return notify
}
