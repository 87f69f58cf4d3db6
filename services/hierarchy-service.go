package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jwdavis0200/TaskFlow-sub001/logging"
	"github.com/jwdavis0200/TaskFlow-sub001/models"
	"github.com/jwdavis0200/TaskFlow-sub001/store"
)

// HierarchyService performs every multi-entity mutation as a single store
// transaction, so readers never observe a partially cascaded state. All writes
// to the denormalized parent arrays (Project.Boards, Board.Columns,
// Column.Tasks) go through here.
type HierarchyService struct {
	store store.EntityStore
}

func NewHierarchyService(entityStore store.EntityStore) *HierarchyService {
	return &HierarchyService{store: entityStore}
}

// BoardDeletion reports what a board cascade removed.
type BoardDeletion struct {
	TasksDeleted   int64 `json:"tasksDeleted"`
	ColumnsDeleted int64 `json:"columnsDeleted"`
}

// ProjectDeletion reports what a project cascade removed.
type ProjectDeletion struct {
	TasksDeleted   int64 `json:"tasksDeleted"`
	ColumnsDeleted int64 `json:"columnsDeleted"`
	BoardsDeleted  int64 `json:"boardsDeleted"`
}

// txError classifies an in-transaction failure. Argument and existence checks
// run before the transaction opens, so anything failing inside is store-level.
func txError(err error) error {
	return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
}

// CreateBoard inserts a board with its three default columns and registers it
// on the parent project, atomically.
func (s *HierarchyService) CreateBoard(ctx context.Context, name, projectID string) (*models.BoardView, error) {
	if err := validateRequired("board name", name, maxNameLen); err != nil {
		return nil, err
	}
	projectObjectID, err := parseID("project", projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetProject(ctx, projectObjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	board := &models.Board{
		ID:        primitive.NewObjectID(),
		Name:      name,
		ProjectID: projectObjectID,
		CreatedAt: now,
	}

	columns := make([]models.Column, len(models.DefaultColumnNames))
	for i, columnName := range models.DefaultColumnNames {
		columns[i] = models.Column{
			ID:        primitive.NewObjectID(),
			Name:      columnName,
			BoardID:   board.ID,
			Tasks:     []primitive.ObjectID{},
			CreatedAt: now,
		}
		board.Columns = append(board.Columns, columns[i].ID)
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.InsertBoard(ctx, board); err != nil {
			return err
		}
		for i := range columns {
			if err := s.store.InsertColumn(ctx, &columns[i]); err != nil {
				return err
			}
		}
		return s.store.AppendProjectBoard(ctx, board.ProjectID, board.ID)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: BOARD_CREATE_ABORTED, Description: Board creation for project %s rolled back: %v", projectID, err)
		return nil, txError(err)
	}

	view := &models.BoardView{Board: *board}
	for i := range columns {
		view.Columns = append(view.Columns, models.ColumnView{Column: columns[i], Tasks: []models.Task{}})
	}
	return view, nil
}

// DeleteBoard removes a board, its columns and tasks, and its entry in the
// parent project's board list, atomically.
func (s *HierarchyService) DeleteBoard(ctx context.Context, boardID string) (*BoardDeletion, error) {
	boardObjectID, err := parseID("board", boardID)
	if err != nil {
		return nil, err
	}
	board, err := s.store.GetBoard(ctx, boardObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: board %s", ErrNotFound, boardID)
		}
		return nil, err
	}

	var deletion BoardDeletion
	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		tasksDeleted, err := s.store.DeleteTasksByBoard(ctx, boardObjectID)
		if err != nil {
			return err
		}
		columnsDeleted, err := s.store.DeleteColumnsByBoard(ctx, boardObjectID)
		if err != nil {
			return err
		}
		if err := s.store.PullProjectBoard(ctx, board.ProjectID, boardObjectID); err != nil {
			return err
		}
		if err := s.store.DeleteBoard(ctx, boardObjectID); err != nil {
			return err
		}
		deletion = BoardDeletion{TasksDeleted: tasksDeleted, ColumnsDeleted: columnsDeleted}
		return nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: BOARD_DELETE_ABORTED, Description: Board deletion %s rolled back: %v", boardID, err)
		return nil, txError(err)
	}

	logging.Logger.Infof("Event ID: BOARD_DELETED, Description: Board %s deleted with %d columns and %d tasks", boardID, deletion.ColumnsDeleted, deletion.TasksDeleted)
	return &deletion, nil
}

// DeleteProject removes a project and everything transitively under it,
// atomically.
func (s *HierarchyService) DeleteProject(ctx context.Context, projectID string) (*ProjectDeletion, error) {
	projectObjectID, err := parseID("project", projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetProject(ctx, projectObjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
		}
		return nil, err
	}

	var deletion ProjectDeletion
	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		tasksDeleted, err := s.store.DeleteTasksByProject(ctx, projectObjectID)
		if err != nil {
			return err
		}
		// The child back-reference is authoritative, so the board list comes
		// from a child query rather than the project's denormalized array.
		boards, err := s.store.ListBoardsByProject(ctx, projectObjectID)
		if err != nil {
			return err
		}
		boardIDs := make([]primitive.ObjectID, len(boards))
		for i, b := range boards {
			boardIDs[i] = b.ID
		}
		columnsDeleted, err := s.store.DeleteColumnsByBoards(ctx, boardIDs)
		if err != nil {
			return err
		}
		boardsDeleted, err := s.store.DeleteBoardsByProject(ctx, projectObjectID)
		if err != nil {
			return err
		}
		if err := s.store.DeleteProject(ctx, projectObjectID); err != nil {
			return err
		}
		deletion = ProjectDeletion{
			TasksDeleted:   tasksDeleted,
			ColumnsDeleted: columnsDeleted,
			BoardsDeleted:  boardsDeleted,
		}
		return nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_DELETE_ABORTED, Description: Project deletion %s rolled back: %v", projectID, err)
		return nil, txError(err)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted with %d boards, %d columns, %d tasks", projectID, deletion.BoardsDeleted, deletion.ColumnsDeleted, deletion.TasksDeleted)
	return &deletion, nil
}

// GetBoardsForProject returns every board of a project with columns and tasks
// populated. This is a fan-out read, not a transaction; staleness within the
// read is acceptable.
func (s *HierarchyService) GetBoardsForProject(ctx context.Context, projectID string) ([]models.BoardView, error) {
	projectObjectID, err := parseID("project", projectID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.GetProject(ctx, projectObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
		}
		return nil, err
	}

	boards, err := s.store.ListBoardsByProject(ctx, projectObjectID)
	if err != nil {
		return nil, err
	}
	boards = orderBoards(project.Boards, boards)

	views := make([]models.BoardView, 0, len(boards))
	for _, board := range boards {
		columns, err := s.store.ListColumnsByBoard(ctx, board.ID)
		if err != nil {
			return nil, err
		}
		columns = orderColumns(board.Columns, columns)

		view := models.BoardView{Board: board, Columns: make([]models.ColumnView, 0, len(columns))}
		for _, column := range columns {
			tasks, err := s.store.ListTasksByColumn(ctx, column.ID)
			if err != nil {
				return nil, err
			}
			if tasks == nil {
				tasks = []models.Task{}
			}
			view.Columns = append(view.Columns, models.ColumnView{Column: column, Tasks: tasks})
		}
		views = append(views, view)
	}
	return views, nil
}

// RenameBoard updates a board's name in place.
func (s *HierarchyService) RenameBoard(ctx context.Context, boardID, name string) (*models.Board, error) {
	if err := validateRequired("board name", name, maxNameLen); err != nil {
		return nil, err
	}
	boardObjectID, err := parseID("board", boardID)
	if err != nil {
		return nil, err
	}
	board, err := s.store.GetBoard(ctx, boardObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: board %s", ErrNotFound, boardID)
		}
		return nil, err
	}

	board.Name = name
	if err := s.store.UpdateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// RenameColumn updates a column's name in place. Kept here so every column
// write stays mediated by this service.
func (s *HierarchyService) RenameColumn(ctx context.Context, columnID, name string) (*models.Column, error) {
	if err := validateRequired("column name", name, maxNameLen); err != nil {
		return nil, err
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

	column.Name = name
	if err := s.store.UpdateColumn(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// GetColumnsForBoard returns a board's columns in display order.
func (s *HierarchyService) GetColumnsForBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	boardObjectID, err := parseID("board", boardID)
	if err != nil {
		return nil, err
	}
	board, err := s.store.GetBoard(ctx, boardObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: board %s", ErrNotFound, boardID)
		}
		return nil, err
	}
	columns, err := s.store.ListColumnsByBoard(ctx, boardObjectID)
	if err != nil {
		return nil, err
	}
	return orderColumns(board.Columns, columns), nil
}

// orderBoards sorts child-query results by the parent's ordered id list.
// Children missing from the list (a divergence the read path tolerates) are
// appended in query order.
func orderBoards(order []primitive.ObjectID, boards []models.Board) []models.Board {
	byID := make(map[primitive.ObjectID]models.Board, len(boards))
	for _, b := range boards {
		byID[b.ID] = b
	}
	ordered := make([]models.Board, 0, len(boards))
	for _, id := range order {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
			delete(byID, id)
		}
	}
	for _, b := range boards {
		if _, ok := byID[b.ID]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered
}

func orderColumns(order []primitive.ObjectID, columns []models.Column) []models.Column {
	byID := make(map[primitive.ObjectID]models.Column, len(columns))
	for _, c := range columns {
		byID[c.ID] = c
	}
	ordered := make([]models.Column, 0, len(columns))
	for _, id := range order {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
			delete(byID, id)
		}
	}
	for _, c := range columns {
		if _, ok := byID[c.ID]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
