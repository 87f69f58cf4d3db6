package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
)

// MongoStore implements EntityStore on top of the four MongoDB collections.
type MongoStore struct {
	client   *mongo.Client
	projects *mongo.Collection
	boards   *mongo.Collection
	columns  *mongo.Collection
	tasks    *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:   client,
		projects: db.Collection("projects"),
		boards:   db.Collection("boards"),
		columns:  db.Collection("columns"),
		tasks:    db.Collection("tasks"),
	}
}

// WithTransaction runs fn inside a MongoDB multi-document transaction. The
// session context fn receives must be used for every operation that should
// join the transaction; WithTransaction on the driver side retries transient
// commit errors before giving up.
func (s *MongoStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *MongoStore) InsertProject(ctx context.Context, p *models.Project) error {
	result, err := s.projects.InsertOne(ctx, p)
	if err != nil {
		return errors.Wrap(err, "failed to insert project")
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStore) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch project")
	}
	return &p, nil
}

func (s *MongoStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.projects.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, errors.Wrap(err, "failed to decode projects")
	}
	return projects, nil
}

func (s *MongoStore) UpdateProject(ctx context.Context, p *models.Project) error {
	result, err := s.projects.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return errors.Wrap(err, "failed to update project")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete project")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AppendProjectBoard(ctx context.Context, projectID, boardID primitive.ObjectID) error {
	filter := bson.M{"_id": projectID}
	update := bson.M{"$push": bson.M{"boards": boardID}}
	result, err := s.projects.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "failed to append board to project")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) PullProjectBoard(ctx context.Context, projectID, boardID primitive.ObjectID) error {
	filter := bson.M{"_id": projectID}
	update := bson.M{"$pull": bson.M{"boards": boardID}}
	result, err := s.projects.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "failed to remove board from project")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertBoard(ctx context.Context, b *models.Board) error {
	result, err := s.boards.InsertOne(ctx, b)
	if err != nil {
		return errors.Wrap(err, "failed to insert board")
	}
	b.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStore) GetBoard(ctx context.Context, id primitive.ObjectID) (*models.Board, error) {
	var b models.Board
	err := s.boards.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch board")
	}
	return &b, nil
}

func (s *MongoStore) ListBoardsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Board, error) {
	cursor, err := s.boards.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list boards")
	}
	defer cursor.Close(ctx)

	var boards []models.Board
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, errors.Wrap(err, "failed to decode boards")
	}
	return boards, nil
}

func (s *MongoStore) UpdateBoard(ctx context.Context, b *models.Board) error {
	result, err := s.boards.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return errors.Wrap(err, "failed to update board")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteBoard(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.boards.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete board")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteBoardsByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	result, err := s.boards.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete boards for project")
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) InsertColumn(ctx context.Context, c *models.Column) error {
	result, err := s.columns.InsertOne(ctx, c)
	if err != nil {
		return errors.Wrap(err, "failed to insert column")
	}
	c.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStore) GetColumn(ctx context.Context, id primitive.ObjectID) (*models.Column, error) {
	var c models.Column
	err := s.columns.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch column")
	}
	return &c, nil
}

func (s *MongoStore) ListColumnsByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Column, error) {
	cursor, err := s.columns.Find(ctx, bson.M{"boardId": boardID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list columns")
	}
	defer cursor.Close(ctx)

	var columns []models.Column
	if err := cursor.All(ctx, &columns); err != nil {
		return nil, errors.Wrap(err, "failed to decode columns")
	}
	return columns, nil
}

func (s *MongoStore) UpdateColumn(ctx context.Context, c *models.Column) error {
	result, err := s.columns.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return errors.Wrap(err, "failed to update column")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteColumnsByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	result, err := s.columns.DeleteMany(ctx, bson.M{"boardId": boardID})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete columns for board")
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) DeleteColumnsByBoards(ctx context.Context, boardIDs []primitive.ObjectID) (int64, error) {
	if len(boardIDs) == 0 {
		return 0, nil
	}
	result, err := s.columns.DeleteMany(ctx, bson.M{"boardId": bson.M{"$in": boardIDs}})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete columns for boards")
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) AppendColumnTask(ctx context.Context, columnID, taskID primitive.ObjectID) error {
	filter := bson.M{"_id": columnID}
	update := bson.M{"$push": bson.M{"tasks": taskID}}
	result, err := s.columns.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "failed to append task to column")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) PullColumnTask(ctx context.Context, columnID, taskID primitive.ObjectID) error {
	filter := bson.M{"_id": columnID}
	update := bson.M{"$pull": bson.M{"tasks": taskID}}
	result, err := s.columns.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "failed to remove task from column")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertTask(ctx context.Context, t *models.Task) error {
	result, err := s.tasks.InsertOne(ctx, t)
	if err != nil {
		return errors.Wrap(err, "failed to insert task")
	}
	t.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStore) GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch task")
	}
	return &t, nil
}

func (s *MongoStore) ListTasksByColumn(ctx context.Context, columnID primitive.ObjectID) ([]models.Task, error) {
	return s.listTasks(ctx, bson.M{"columnId": columnID})
}

func (s *MongoStore) ListTasksByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Task, error) {
	return s.listTasks(ctx, bson.M{"boardId": boardID})
}

func (s *MongoStore) ListTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return s.listTasks(ctx, bson.M{"projectId": projectID})
}

func (s *MongoStore) listTasks(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := s.tasks.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, errors.Wrap(err, "failed to decode tasks")
	}
	return tasks, nil
}

func (s *MongoStore) UpdateTask(ctx context.Context, t *models.Task) error {
	result, err := s.tasks.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return errors.Wrap(err, "failed to update task")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete task")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteTasksByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	result, err := s.tasks.DeleteMany(ctx, bson.M{"boardId": boardID})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete tasks for board")
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	result, err := s.tasks.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete tasks for project")
	}
	return result.DeletedCount, nil
}
