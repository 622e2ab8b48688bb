package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tasktracker/internal/adapter/storage/csvfile"
	"tasktracker/internal/core/domain"
)

const (
	formatCSV  = "csv"
	formatYAML = "yaml"
)

type exportDocument struct {
	Tasks    []exportItem `yaml:"tasks"`
	Epics    []exportItem `yaml:"epics"`
	Subtasks []exportItem `yaml:"subtasks"`
	History  []int        `yaml:"history"`
}

type exportItem struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Status      string `yaml:"status"`
	StartTime   string `yaml:"start_time,omitempty"`
	EndTime     string `yaml:"end_time,omitempty"`
	Duration    int64  `yaml:"duration_minutes"`
	EpicID      int    `yaml:"epic_id,omitempty"`
	SubtaskIDs  []int  `yaml:"subtask_ids,omitempty"`
}

func exportCmd(opts *rootOptions) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored snapshot as csv or yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			service, closeFn, err := openService(ctx, opts.loadConfig())
			if err != nil {
				return err
			}
			defer closeFn()

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return writeExport(w, format, service.Snapshot())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "output format (csv, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func writeExport(w io.Writer, format string, snapshot domain.Snapshot) error {
	switch format {
	case formatCSV:
		return csvfile.Encode(w, snapshot)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(toExportDocument(snapshot)); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

func toExportDocument(snapshot domain.Snapshot) exportDocument {
	doc := exportDocument{
		Tasks:    toExportItems(snapshot.Tasks),
		Epics:    toExportItems(snapshot.Epics),
		Subtasks: toExportItems(snapshot.Subtasks),
		History:  snapshot.History,
	}
	if doc.History == nil {
		doc.History = []int{}
	}
	return doc
}

func toExportItems(tasks []domain.Task) []exportItem {
	items := make([]exportItem, 0, len(tasks))
	for _, task := range tasks {
		item := exportItem{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      string(task.Status),
			Duration:    int64(task.Duration / time.Minute),
			SubtaskIDs:  task.SubtaskIDs(),
		}
		if task.StartTime != nil {
			item.StartTime = task.StartTime.Format(time.RFC3339Nano)
		}
		if end := task.EndTime(); end != nil {
			item.EndTime = end.Format(time.RFC3339Nano)
		}
		if task.Type == domain.TypeSubtask {
			item.EpicID = task.EpicID()
		}
		items = append(items, item)
	}
	return items
}
