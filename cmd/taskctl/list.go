package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "list [tasks|epics|subtasks]",
		Short:     "List stored entities, all kinds by default",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"tasks", "epics", "subtasks"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}
			return withService(cmd, opts, func(ctx context.Context, service ports.TaskService) error {
				tasks, err := listKind(ctx, service, kind)
				if err != nil {
					return err
				}
				return printTable(cmd.OutOrStdout(), tasks)
			})
		},
	}
}

func prioritizedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prioritized",
		Short: "List scheduled tasks and subtasks by start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, service ports.TaskService) error {
				tasks, err := service.Prioritized(ctx)
				if err != nil {
					return err
				}
				return printTable(cmd.OutOrStdout(), tasks)
			})
		},
	}
}

func historyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recently viewed entities, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, service ports.TaskService) error {
				tasks, err := service.History(ctx)
				if err != nil {
					return err
				}
				return printTable(cmd.OutOrStdout(), tasks)
			})
		},
	}
}

func endTimeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "end-time [id]",
		Short: "Print when an entity ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int
			if _, err := fmt.Sscan(args[0], &id); err != nil || id < domain.MinID {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return withService(cmd, opts, func(ctx context.Context, service ports.TaskService) error {
				end, err := service.EndTime(ctx, id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), formatTime(end))
				return err
			})
		},
	}
}

func withService(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, service ports.TaskService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	service, closeFn, err := openService(ctx, opts.loadConfig())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, service)
}

func listKind(ctx context.Context, service ports.TaskService, kind string) ([]domain.Task, error) {
	switch kind {
	case "tasks":
		return service.ListTasks(ctx)
	case "epics":
		return service.ListEpics(ctx)
	case "subtasks":
		return service.ListSubtasks(ctx)
	}

	var all []domain.Task
	for _, list := range []func(context.Context) ([]domain.Task, error){service.ListTasks, service.ListEpics, service.ListSubtasks} {
		tasks, err := list(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
	}
	return all, nil
}

func printTable(w io.Writer, tasks []domain.Task) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tSTART\tMINUTES\tEPIC\tTITLE")
	for _, task := range tasks {
		epic := "-"
		if task.Type == domain.TypeSubtask {
			epic = fmt.Sprint(task.EpicID())
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			task.ID, task.Type, task.Status, formatTime(task.StartTime), int64(task.Duration/time.Minute), epic, task.Title)
	}
	return tw.Flush()
}

func formatTime(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Format(time.RFC3339Nano)
}
