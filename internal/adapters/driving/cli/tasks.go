package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

var (
	tasksListID        string
	tasksShowCompleted bool
	tasksPageSize      int
	tasksCursor        string
	tasksAll           bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Browse Google Tasks",
}

var tasksListsCmd = &cobra.Command{
	Use:   "lists",
	Short: "List task lists",
	Args:  cobra.NoArgs,
	RunE:  runTasksLists,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in a list",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

var tasksGetCmd = &cobra.Command{
	Use:   "get [task-id]",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksGet,
}

var tasksSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find tasks whose title or notes contain text",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksSearch,
}

func init() {
	for _, c := range []*cobra.Command{tasksListCmd, tasksGetCmd, tasksSearchCmd} {
		c.Flags().StringVar(&tasksListID, "list", domain.DefaultTaskList, "task list id")
	}
	for _, c := range []*cobra.Command{tasksListCmd, tasksSearchCmd} {
		c.Flags().BoolVar(&tasksShowCompleted, "show-completed", false, "include completed tasks")
	}
	tasksListCmd.Flags().IntVarP(&tasksPageSize, "page-size", "n", 0, "tasks per page")
	tasksListCmd.Flags().StringVar(&tasksCursor, "cursor", "", "continue from a previous page")
	tasksListCmd.Flags().BoolVar(&tasksAll, "all", false, "fetch every page")

	tasksCmd.AddCommand(tasksListsCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksGetCmd)
	tasksCmd.AddCommand(tasksSearchCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasksLists(cmd *cobra.Command, _ []string) error {
	if tasksService == nil {
		return errors.New("tasks service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	lists, err := tasksService.TaskLists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list task lists: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, lists)
	}
	if len(lists) == 0 {
		cmd.Println("No task lists found.")
		return nil
	}
	for _, l := range lists {
		updated := ""
		if !l.Updated.IsZero() {
			updated = "updated " + humanize.Time(l.Updated)
		}
		cmd.Printf("  %-40s %-24s %s\n", truncate(l.Title, 40), updated, l.ID)
	}
	return nil
}

func runTasksList(cmd *cobra.Command, _ []string) error {
	if tasksService == nil {
		return errors.New("tasks service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	filter := domain.TaskFilter{TaskListID: tasksListID, ShowCompleted: tasksShowCompleted}
	if tasksAll {
		tasks, err := tasksService.ListAll(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return outputTasks(cmd, tasks, "")
	}

	page, err := tasksService.List(ctx, filter, tasksPageSize, tasksCursor)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	return outputTasks(cmd, page.Items, page.NextCursor)
}

func runTasksGet(cmd *cobra.Command, args []string) error {
	if tasksService == nil {
		return errors.New("tasks service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	task, err := tasksService.Get(ctx, tasksListID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, task)
	}

	cmd.Printf("Task: %s\n", orNotSet(task.Title))
	cmd.Printf("  ID:     %s\n", task.ID)
	cmd.Printf("  List:   %s\n", task.TaskListID)
	cmd.Printf("  Status: %s\n", task.Status)
	if task.Due != nil {
		cmd.Printf("  Due:    %s (%s)\n", task.Due.Format(time.DateOnly), humanize.Time(*task.Due))
	}
	if task.Completed != nil {
		cmd.Printf("  Done:   %s\n", humanize.Time(*task.Completed))
	}
	for _, l := range task.Links {
		cmd.Printf("  Link:   %s %s\n", l.Link, typeSuffix(l.Description))
	}
	if task.Notes != "" {
		cmd.Println()
		cmd.Println(task.Notes)
	}
	return nil
}

func runTasksSearch(cmd *cobra.Command, args []string) error {
	if tasksService == nil {
		return errors.New("tasks service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	filter := domain.TaskFilter{TaskListID: tasksListID, ShowCompleted: tasksShowCompleted}
	tasks, err := tasksService.Search(ctx, filter, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return outputTasks(cmd, tasks, "")
}

func outputTasks(cmd *cobra.Command, tasks []domain.Task, cursor string) error {
	if outputJSON {
		return printJSON(cmd, domain.Page[domain.Task]{Items: tasks, NextCursor: cursor})
	}
	if len(tasks) == 0 {
		cmd.Println("No tasks found.")
		return nil
	}

	for i := range tasks {
		t := &tasks[i]
		box := "[ ]"
		if t.IsCompleted() {
			box = "[x]"
		}
		due := ""
		if t.Due != nil {
			due = "due " + t.Due.Format(time.DateOnly)
		}
		cmd.Printf("  %s %-45s %-14s %s\n", box, truncate(orNotSet(t.Title), 45), due, t.ID)
	}
	printMore(cmd, cursor)
	return nil
}
