package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
)

// Ensure TasksService implements the interface.
var _ driving.TasksService = (*TasksService)(nil)

// TasksService serves task lists and tasks. Nothing is cached.
type TasksService struct {
	provider driven.TasksProvider
	opts     ServiceOptions
}

// NewTasksService creates a new tasks service.
func NewTasksService(provider driven.TasksProvider, opts ServiceOptions) *TasksService {
	return &TasksService{provider: provider, opts: opts.withDefaults()}
}

// TaskLists returns every task list.
func (s *TasksService) TaskLists(ctx context.Context) ([]domain.TaskList, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}
	return CollectPages(ctx, "tasks.tasklists.list", func(ctx context.Context, cursor string) (domain.Page[domain.TaskList], error) {
		return s.provider.ListTaskLists(ctx, domain.DefaultTaskPageSize, cursor)
	}, func(l domain.TaskList) string { return l.ID })
}

// List fetches one page of tasks. An empty list id means the default list.
func (s *TasksService) List(
	ctx context.Context, filter domain.TaskFilter, pageSize int, cursor string,
) (domain.Page[domain.Task], error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Page[domain.Task]{}, err
	}
	if filter.TaskListID == "" {
		filter.TaskListID = domain.DefaultTaskList
	}
	return s.provider.ListTasks(ctx, filter, domain.PageSizeOr(pageSize, domain.DefaultTaskPageSize), cursor)
}

// ListAll follows cursors until every task in the list is returned.
func (s *TasksService) ListAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	return CollectPages(ctx, "tasks.tasks.list", func(ctx context.Context, cursor string) (domain.Page[domain.Task], error) {
		return s.List(ctx, filter, domain.DefaultTaskPageSize, cursor)
	}, taskKey)
}

// Get returns one task.
func (s *TasksService) Get(ctx context.Context, taskListID, taskID string) (domain.Task, error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Task{}, err
	}
	if strings.TrimSpace(taskID) == "" {
		return domain.Task{}, fmt.Errorf("%w: task id is required", domain.ErrInvalidInput)
	}
	if taskListID == "" {
		taskListID = domain.DefaultTaskList
	}
	return s.provider.GetTask(ctx, taskListID, taskID)
}

// Search filters a whole task list by a case-insensitive match on title
// or notes. The provider has no search endpoint.
func (s *TasksService) Search(ctx context.Context, filter domain.TaskFilter, text string) ([]domain.Task, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil, fmt.Errorf("%w: search text is required", domain.ErrInvalidInput)
	}

	all, err := s.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	var matches []domain.Task
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Title), needle) || strings.Contains(strings.ToLower(t.Notes), needle) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

func taskKey(t domain.Task) string { return t.TaskListID + "/" + t.ID }
