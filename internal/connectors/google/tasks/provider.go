// Package tasks adapts the Google Tasks API to the task-list port.
package tasks

import (
	"context"
	"fmt"

	"google.golang.org/api/tasks/v1"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TasksProvider = (*Provider)(nil)

// Provider reads task lists through the Tasks API.
type Provider struct {
	client *google.Client
	svc    *tasks.Service
}

// New creates a Tasks provider on client.
func New(ctx context.Context, client *google.Client) (*Provider, error) {
	svc, err := google.NewTasksService(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create tasks service: %w", err)
	}
	return &Provider{client: client, svc: svc}, nil
}

// ListTaskLists fetches one page of task lists.
func (p *Provider) ListTaskLists(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.TaskList], error) {
	const op = "tasks.tasklists.list"

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*tasks.TaskLists, error) {
		call := p.svc.Tasklists.List().
			MaxResults(int64(domain.PageSizeOr(pageSize, domain.DefaultTaskPageSize))).
			Context(ctx)
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.TaskList]{}, err
	}

	lists := make([]domain.TaskList, 0, len(resp.Items))
	for _, l := range resp.Items {
		tl, err := toTaskList(op, l)
		if err != nil {
			return domain.Page[domain.TaskList]{}, err
		}
		lists = append(lists, tl)
	}
	return domain.Page[domain.TaskList]{Items: lists, NextCursor: resp.NextPageToken}, nil
}

// ListTasks fetches one page of tasks from a list.
func (p *Provider) ListTasks(
	ctx context.Context, filter domain.TaskFilter, pageSize int, cursor string,
) (domain.Page[domain.Task], error) {
	const op = "tasks.tasks.list"
	listID := listOrDefault(filter.TaskListID)

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*tasks.Tasks, error) {
		call := p.svc.Tasks.List(listID).
			MaxResults(int64(domain.PageSizeOr(pageSize, domain.DefaultTaskPageSize))).
			ShowCompleted(filter.ShowCompleted).
			ShowHidden(filter.ShowCompleted).
			Context(ctx)
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.Task]{}, err
	}

	items := make([]domain.Task, 0, len(resp.Items))
	for _, t := range resp.Items {
		task, err := toTask(op, listID, t)
		if err != nil {
			return domain.Page[domain.Task]{}, err
		}
		items = append(items, task)
	}
	return domain.Page[domain.Task]{Items: items, NextCursor: resp.NextPageToken}, nil
}

// GetTask fetches one task.
func (p *Provider) GetTask(ctx context.Context, taskListID, taskID string) (domain.Task, error) {
	const op = "tasks.tasks.get"
	listID := listOrDefault(taskListID)

	t, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*tasks.Task, error) {
		return p.svc.Tasks.Get(listID, taskID).Context(ctx).Do()
	})
	if err != nil {
		return domain.Task{}, err
	}
	return toTask(op, listID, t)
}

func listOrDefault(id string) string {
	if id == "" {
		return domain.DefaultTaskList
	}
	return id
}
