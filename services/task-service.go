package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
	"github.com/jwdavis0200/TaskFlow-sub001/store"
)

// TaskService covers single-task CRUD and time tracking. Tasks never cascade;
// only their membership in a column's task list is kept transactional.
type TaskService struct {
	store store.EntityStore
	now   func() time.Time
}

func NewTaskService(entityStore store.EntityStore) *TaskService {
	return &TaskService{store: entityStore, now: time.Now}
}

// statusForColumn is the single place the column-name convention is applied:
// moving a task into one of the three default columns sets the matching
// status, any other column name leaves status untouched.
func statusForColumn(name string) models.TaskStatus {
	switch name {
	case "To Do":
		return models.StatusToDo
	case "In Progress":
		return models.StatusInProgress
	case "Done":
		return models.StatusDone
	}
	return ""
}

// CreateTaskInput is the task-creation payload. ColumnID may be empty, in
// which case the task lands in the board's first column.
type CreateTaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ProjectID   string              `json:"projectId"`
	BoardID     string              `json:"boardId"`
	ColumnID    string              `json:"columnId"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo"`
	DueDate     *time.Time          `json:"dueDate"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := validateRequired("task title", input.Title, maxTitleLen); err != nil {
		return nil, err
	}
	if err := validateOptional("task description", input.Description, maxTaskDescLen); err != nil {
		return nil, err
	}
	projectObjectID, err := parseID("project", input.ProjectID)
	if err != nil {
		return nil, err
	}
	boardObjectID, err := parseID("board", input.BoardID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetProject(ctx, projectObjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, input.ProjectID)
		}
		return nil, err
	}
	board, err := s.store.GetBoard(ctx, boardObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: board %s", ErrNotFound, input.BoardID)
		}
		return nil, err
	}
	if board.ProjectID != projectObjectID {
		return nil, fmt.Errorf("%w: board %s does not belong to project %s", ErrInvalidArgument, input.BoardID, input.ProjectID)
	}

	column, err := s.resolveColumn(ctx, board, input.ColumnID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.StatusToDo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, input.Status)
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, input.Priority)
	}

	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		ColumnID:    column.ID,
		BoardID:     board.ID,
		ProjectID:   projectObjectID,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		Status:      status,
		Priority:    priority,
		CreatedAt:   s.now().UTC(),
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.InsertTask(ctx, task); err != nil {
			return err
		}
		return s.store.AppendColumnTask(ctx, column.ID, task.ID)
	})
	if err != nil {
		return nil, txError(err)
	}
	return task, nil
}

// resolveColumn picks the target column for a new task: the requested one
// (which must belong to the board) or the board's first column by order.
func (s *TaskService) resolveColumn(ctx context.Context, board *models.Board, columnID string) (*models.Column, error) {
	if columnID == "" {
		if len(board.Columns) == 0 {
			return nil, fmt.Errorf("%w: board %s has no columns", ErrNotFound, board.ID.Hex())
		}
		column, err := s.store.GetColumn(ctx, board.Columns[0])
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: column %s", ErrNotFound, board.Columns[0].Hex())
			}
			return nil, err
		}
		return column, nil
	}

	columnObjectID, err := parseID("column", columnID)
	if err != nil {
		return nil, err
	}
	column, err := s.store.GetColumn(ctx, columnObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: column %s", ErrNotFound, columnID)
		}
		return nil, err
	}
	if column.BoardID != board.ID {
		return nil, fmt.Errorf("%w: column %s does not belong to board %s", ErrInvalidArgument, columnID, board.ID.Hex())
	}
	return column, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	taskObjectID, err := parseID("task", taskID)
	if err != nil {
		return nil, err
	}
	task, err := s.store.GetTask(ctx, taskObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		return nil, err
	}
	return task, nil
}

// ListTasks filters by exactly one of column, board or project id.
func (s *TaskService) ListTasks(ctx context.Context, columnID, boardID, projectID string) ([]models.Task, error) {
	switch {
	case columnID != "":
		id, err := parseID("column", columnID)
		if err != nil {
			return nil, err
		}
		return s.store.ListTasksByColumn(ctx, id)
	case boardID != "":
		id, err := parseID("board", boardID)
		if err != nil {
			return nil, err
		}
		return s.store.ListTasksByBoard(ctx, id)
	case projectID != "":
		id, err := parseID("project", projectID)
		if err != nil {
			return nil, err
		}
		return s.store.ListTasksByProject(ctx, id)
	}
	return nil, fmt.Errorf("%w: columnId, boardId or projectId is required", ErrInvalidArgument)
}

// TaskUpdate carries a partial task patch; nil fields are left alone.
type TaskUpdate struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	ColumnID    *string              `json:"columnId,omitempty"`
	AssignedTo  *primitive.ObjectID  `json:"assignedTo,omitempty"`
	DueDate     *time.Time           `json:"dueDate,omitempty"`
	Status      *models.TaskStatus   `json:"status,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	IsCompleted *bool                `json:"isCompleted,omitempty"`
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID string, update TaskUpdate) (*models.Task, error) {
	taskObjectID, err := parseID("task", taskID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		if err := validateRequired("task title", *update.Title, maxTitleLen); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		if err := validateOptional("task description", *update.Description, maxTaskDescLen); err != nil {
			return nil, err
		}
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *update.Status)
	}
	if update.Priority != nil && !update.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, *update.Priority)
	}

	task, err := s.store.GetTask(ctx, taskObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		return nil, err
	}

	var targetColumn *models.Column
	if update.ColumnID != nil && *update.ColumnID != task.ColumnID.Hex() {
		board, err := s.store.GetBoard(ctx, task.BoardID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: board %s", ErrNotFound, task.BoardID.Hex())
			}
			return nil, err
		}
		targetColumn, err = s.resolveColumn(ctx, board, *update.ColumnID)
		if err != nil {
			return nil, err
		}
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.AssignedTo != nil {
		task.AssignedTo = update.AssignedTo
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.IsCompleted != nil {
		task.IsCompleted = *update.IsCompleted
	}

	if targetColumn == nil {
		if err := s.store.UpdateTask(ctx, task); err != nil {
			return nil, err
		}
		return task, nil
	}

	// Column move: the membership change and the task write land together.
	// An explicit status in the same patch wins over the column convention.
	previousColumn := task.ColumnID
	task.ColumnID = targetColumn.ID
	if update.Status == nil {
		if status := statusForColumn(targetColumn.Name); status != "" {
			task.Status = status
		}
	}
	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.PullColumnTask(ctx, previousColumn, task.ID); err != nil {
			return err
		}
		if err := s.store.AppendColumnTask(ctx, targetColumn.ID, task.ID); err != nil {
			return err
		}
		return s.store.UpdateTask(ctx, task)
	})
	if err != nil {
		return nil, txError(err)
	}
	return task, nil
}

// DeleteTask removes a task and its column-membership entry. No cascade.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	taskObjectID, err := parseID("task", taskID)
	if err != nil {
		return err
	}
	task, err := s.store.GetTask(ctx, taskObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		return err
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.PullColumnTask(ctx, task.ColumnID, task.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return s.store.DeleteTask(ctx, task.ID)
	})
	if err != nil {
		return txError(err)
	}
	return nil
}

// StartTimer begins time tracking on a task. Starting an already-running
// timer is a no-op.
func (s *TaskService) StartTimer(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsRunning {
		return task, nil
	}

	startedAt := s.now().UTC()
	task.IsRunning = true
	task.TrackingStartedAt = &startedAt
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// StopTimer ends time tracking, folding the elapsed seconds into TimeSpent.
// Stopping a stopped timer is a no-op.
func (s *TaskService) StopTimer(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsRunning {
		return task, nil
	}

	if task.TrackingStartedAt != nil {
		elapsed := int64(s.now().UTC().Sub(*task.TrackingStartedAt).Seconds())
		if elapsed > 0 {
			task.TimeSpent += elapsed
		}
	}
	task.IsRunning = false
	task.TrackingStartedAt = nil
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
