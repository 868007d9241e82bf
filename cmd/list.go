package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teemow/didamcp/internal/civil"
	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/task"
)

func newListCmd() *cobra.Command {
	var (
		accessToken string
		mode        string
		projectName string
		keyword     string
		priority    int
		completed   string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Dida365 tasks from the command line",
		Long: `Aggregate tasks across all Dida365 projects and print the matching
ones. Filters mirror the MCP get_tasks tool: a time mode, a keyword,
a priority level, a project name and a completion flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(false)

			token := resolveAccessToken(accessToken)
			if token == "" {
				return fmt.Errorf("no Dida365 access token: set --access-token or the DIDA_ACCESS_TOKEN environment variable")
			}

			query, err := buildListQuery(mode, projectName, keyword, priority, completed)
			if err != nil {
				return err
			}

			client, err := dida.NewClient(token, dida.WithLogger(slog.Default()))
			if err != nil {
				return fmt.Errorf("failed to create Dida365 client: %w", err)
			}
			svc := task.NewService(client, slog.Default())

			result, err := svc.GetTasks(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to fetch tasks: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printTasks(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&accessToken, "access-token", "",
		"Dida365 access token (defaults to DIDA_ACCESS_TOKEN environment variable)")
	cmd.Flags().StringVar(&mode, "mode", "all",
		"Time filter: all, today, yesterday, or recent_7_days")
	cmd.Flags().StringVar(&projectName, "project", "", "Filter by project name")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Filter by keyword in title or content")
	cmd.Flags().IntVar(&priority, "priority", -1, "Filter by priority: 0 (none), 1 (low), 3 (medium), or 5 (high)")
	cmd.Flags().StringVar(&completed, "completed", "", "Filter by completion: true or false")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON result")

	return cmd
}

// buildListQuery translates the list flags into a task query. Priority -1
// and an empty completed string mean the filter is unset.
func buildListQuery(mode, projectName, keyword string, priority int, completed string) (task.Query, error) {
	q := task.Query{
		Mode:        task.Mode(mode),
		Keyword:     keyword,
		ProjectName: projectName,
	}

	if !task.ValidMode(q.Mode) {
		return task.Query{}, fmt.Errorf("invalid mode %q (supported: all, today, yesterday, recent_7_days)", mode)
	}

	if priority >= 0 {
		p := dida.Priority(priority)
		if !dida.ValidPriority(p) {
			return task.Query{}, fmt.Errorf("invalid priority %d (supported: 0, 1, 3, 5)", priority)
		}
		q.Priority = &p
	}

	if completed != "" {
		c, err := strconv.ParseBool(completed)
		if err != nil {
			return task.Query{}, fmt.Errorf("invalid completed value %q (supported: true, false)", completed)
		}
		q.Completed = &c
	}

	return q, nil
}

func printTasks(result *task.TasksResult) {
	for _, t := range result.Data {
		status := " "
		if t.IsCompleted {
			status = "x"
		}
		line := fmt.Sprintf("[%s] %s", status, t.Title)
		if t.ProjectName != "" {
			line += fmt.Sprintf("  (%s)", t.ProjectName)
		}
		if t.DueDate != "" {
			line += fmt.Sprintf("  due %s", t.DueDate)
		}
		if t.ModifiedTime != "" {
			line += fmt.Sprintf("  (updated %s)", civil.FormatFriendly(t.ModifiedTime))
		}
		fmt.Println(line)
	}

	fmt.Printf("%d task(s)\n", result.Count)
	for _, f := range result.FailedProjects {
		fmt.Fprintf(os.Stderr, "warning: project %s could not be fetched: %v\n", f.ProjectName, f.Err)
	}
}
