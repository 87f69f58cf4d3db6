package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
)

// ErrNotFound is returned by Get* methods when no document matches the id.
var ErrNotFound = errors.New("document not found")

// EntityStore is the persistence adapter for the four entity collections.
// Implementations must make WithTransaction atomic: either every write made
// through the callback's context is visible afterwards, or none is.
type EntityStore interface {
	// WithTransaction runs fn atomically. Writes issued inside fn must use the
	// context fn receives; on a non-nil return every write is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	InsertProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	// AppendProjectBoard and PullProjectBoard edit the project's denormalized
	// board-id list without rewriting the whole document.
	AppendProjectBoard(ctx context.Context, projectID, boardID primitive.ObjectID) error
	PullProjectBoard(ctx context.Context, projectID, boardID primitive.ObjectID) error

	InsertBoard(ctx context.Context, b *models.Board) error
	GetBoard(ctx context.Context, id primitive.ObjectID) (*models.Board, error)
	ListBoardsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Board, error)
	UpdateBoard(ctx context.Context, b *models.Board) error
	DeleteBoard(ctx context.Context, id primitive.ObjectID) error
	DeleteBoardsByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)

	InsertColumn(ctx context.Context, c *models.Column) error
	GetColumn(ctx context.Context, id primitive.ObjectID) (*models.Column, error)
	ListColumnsByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Column, error)
	UpdateColumn(ctx context.Context, c *models.Column) error
	DeleteColumnsByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error)
	DeleteColumnsByBoards(ctx context.Context, boardIDs []primitive.ObjectID) (int64, error)
	AppendColumnTask(ctx context.Context, columnID, taskID primitive.ObjectID) error
	PullColumnTask(ctx context.Context, columnID, taskID primitive.ObjectID) error

	InsertTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	ListTasksByColumn(ctx context.Context, columnID primitive.ObjectID) ([]models.Task, error)
	ListTasksByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Task, error)
	ListTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id primitive.ObjectID) error
	DeleteTasksByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error)
	DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
}
