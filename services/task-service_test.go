package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
	"github.com/jwdavis0200/TaskFlow-sub001/store"
)

func setupBoard(t *testing.T) (*store.MemoryStore, *HierarchyService, *TaskService, *models.Project, *models.BoardView) {
	t.Helper()
	s := store.NewMemoryStore()
	hierarchy := NewHierarchyService(s)
	tasks := NewTaskService(s)

	p := newTestProject(t, s, "P1")
	board, err := hierarchy.CreateBoard(context.Background(), "Sprint 1", p.ID.Hex())
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	return s, hierarchy, tasks, p, board
}

func TestCreateTaskDefaults(t *testing.T) {
	s, _, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Write docs",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if task.Status != models.StatusToDo {
		t.Errorf("Expected default status to-do, got %q", task.Status)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Expected default priority medium, got %q", task.Priority)
	}
	if task.TimeSpent != 0 || task.IsRunning {
		t.Errorf("Expected zeroed time tracking, got timeSpent=%d isRunning=%v", task.TimeSpent, task.IsRunning)
	}
	// No column given: the task lands in the first column.
	if task.ColumnID != board.Columns[0].ID {
		t.Errorf("Expected task in first column %s, got %s", board.Columns[0].ID.Hex(), task.ColumnID.Hex())
	}

	column, _ := s.GetColumn(ctx, task.ColumnID)
	if len(column.Tasks) != 1 || column.Tasks[0] != task.ID {
		t.Errorf("Expected column.tasks == [%s], got %v", task.ID.Hex(), column.Tasks)
	}
}

func TestCreateTaskConsistencyChecks(t *testing.T) {
	_, hierarchy, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	// Board from a different project.
	other := NewProjectService(tasks.store)
	p2, err := other.CreateProject(ctx, "P2", "")
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	b2, err := hierarchy.CreateBoard(ctx, "Other", p2.ID.Hex())
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	_, err = tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Mismatched",
		ProjectID: p.ID.Hex(),
		BoardID:   b2.ID.Hex(),
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for board of another project, got %v", err)
	}

	// Column from a different board.
	_, err = tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Mismatched column",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
		ColumnID:  b2.Columns[0].ID.Hex(),
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for column of another board, got %v", err)
	}

	_, err = tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "No such project",
		ProjectID: "6563c1a5b1e2f3a4b5c6d7e8",
		BoardID:   board.ID.Hex(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing project, got %v", err)
	}
}

func TestMoveTaskAppliesColumnStatusConvention(t *testing.T) {
	s, _, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Move me",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	inProgress := board.Columns[1].ID.Hex()
	moved, err := tasks.UpdateTask(ctx, task.ID.Hex(), TaskUpdate{ColumnID: &inProgress})
	if err != nil {
		t.Fatalf("Failed to move task: %v", err)
	}
	if moved.Status != models.StatusInProgress {
		t.Errorf("Expected status in-progress after move, got %q", moved.Status)
	}

	// Membership arrays follow the move.
	oldColumn, _ := s.GetColumn(ctx, board.Columns[0].ID)
	if len(oldColumn.Tasks) != 0 {
		t.Errorf("Task still listed in old column: %v", oldColumn.Tasks)
	}
	newColumn, _ := s.GetColumn(ctx, board.Columns[1].ID)
	if len(newColumn.Tasks) != 1 || newColumn.Tasks[0] != task.ID {
		t.Errorf("Task missing from new column: %v", newColumn.Tasks)
	}

	// An explicit status in the same patch wins over the convention.
	done := board.Columns[2].ID.Hex()
	keep := models.StatusInProgress
	moved, err = tasks.UpdateTask(ctx, task.ID.Hex(), TaskUpdate{ColumnID: &done, Status: &keep})
	if err != nil {
		t.Fatalf("Failed to move task: %v", err)
	}
	if moved.Status != models.StatusInProgress {
		t.Errorf("Explicit status overridden by column convention: %q", moved.Status)
	}
}

func TestMoveTaskToRenamedColumnKeepsStatus(t *testing.T) {
	_, hierarchy, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Move me",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if _, err := hierarchy.RenameColumn(ctx, board.Columns[2].ID.Hex(), "Shipped"); err != nil {
		t.Fatalf("Failed to rename column: %v", err)
	}

	shipped := board.Columns[2].ID.Hex()
	moved, err := tasks.UpdateTask(ctx, task.ID.Hex(), TaskUpdate{ColumnID: &shipped})
	if err != nil {
		t.Fatalf("Failed to move task: %v", err)
	}
	// "Shipped" is not a conventional name, so status stays what it was.
	if moved.Status != models.StatusToDo {
		t.Errorf("Expected status unchanged for non-default column, got %q", moved.Status)
	}
}

func TestDeleteTaskRemovesColumnMembership(t *testing.T) {
	s, _, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Delete me",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if err := tasks.DeleteTask(ctx, task.ID.Hex()); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}
	if _, err := s.GetTask(ctx, task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Task still queryable after delete: %v", err)
	}
	column, _ := s.GetColumn(ctx, board.Columns[0].ID)
	if len(column.Tasks) != 0 {
		t.Errorf("Column still lists the deleted task: %v", column.Tasks)
	}

	if err := tasks.DeleteTask(ctx, task.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestTimeTracking(t *testing.T) {
	_, _, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	tasks.now = func() time.Time { return current }

	task, err := tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "Tracked",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	started, err := tasks.StartTimer(ctx, task.ID.Hex())
	if err != nil {
		t.Fatalf("Failed to start timer: %v", err)
	}
	if !started.IsRunning || started.TrackingStartedAt == nil {
		t.Fatal("Expected timer running with a start timestamp")
	}

	// Starting again is a no-op.
	if _, err := tasks.StartTimer(ctx, task.ID.Hex()); err != nil {
		t.Fatalf("Second start failed: %v", err)
	}

	current = base.Add(90 * time.Second)
	stopped, err := tasks.StopTimer(ctx, task.ID.Hex())
	if err != nil {
		t.Fatalf("Failed to stop timer: %v", err)
	}
	if stopped.IsRunning || stopped.TrackingStartedAt != nil {
		t.Error("Expected timer cleared after stop")
	}
	if stopped.TimeSpent != 90 {
		t.Errorf("Expected 90 seconds accumulated, got %d", stopped.TimeSpent)
	}

	// Stopping again accumulates nothing.
	stopped, err = tasks.StopTimer(ctx, task.ID.Hex())
	if err != nil {
		t.Fatalf("Second stop failed: %v", err)
	}
	if stopped.TimeSpent != 90 {
		t.Errorf("Double stop changed timeSpent: %d", stopped.TimeSpent)
	}
}

func TestListTasksRequiresFilter(t *testing.T) {
	_, _, tasks, p, board := setupBoard(t)
	ctx := context.Background()

	if _, err := tasks.ListTasks(ctx, "", "", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument without filters, got %v", err)
	}

	if _, err := tasks.CreateTask(ctx, CreateTaskInput{
		Title:     "One",
		ProjectID: p.ID.Hex(),
		BoardID:   board.ID.Hex(),
	}); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	byBoard, err := tasks.ListTasks(ctx, "", board.ID.Hex(), "")
	if err != nil {
		t.Fatalf("Failed to list by board: %v", err)
	}
	if len(byBoard) != 1 {
		t.Errorf("Expected 1 task by board, got %d", len(byBoard))
	}
}
