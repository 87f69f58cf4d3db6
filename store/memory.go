package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
)

// MemoryStore is an in-process EntityStore with the same transactional
// semantics as MongoStore: WithTransaction either applies every write or none.
// It backs tests and serves as a fallback when no Mongo URI is configured.
type MemoryStore struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]*models.Project
	boards   map[primitive.ObjectID]*models.Board
	columns  map[primitive.ObjectID]*models.Column
	tasks    map[primitive.ObjectID]*models.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[primitive.ObjectID]*models.Project),
		boards:   make(map[primitive.ObjectID]*models.Board),
		columns:  make(map[primitive.ObjectID]*models.Column),
		tasks:    make(map[primitive.ObjectID]*models.Task),
	}
}

// txKey marks a context as already holding the store lock, so operations
// issued inside WithTransaction do not deadlock re-acquiring it.
type txKey struct{}

func (s *MemoryStore) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	projects map[primitive.ObjectID]*models.Project
	boards   map[primitive.ObjectID]*models.Board
	columns  map[primitive.ObjectID]*models.Column
	tasks    map[primitive.ObjectID]*models.Task
}

func (s *MemoryStore) takeSnapshot() snapshot {
	snap := snapshot{
		projects: make(map[primitive.ObjectID]*models.Project, len(s.projects)),
		boards:   make(map[primitive.ObjectID]*models.Board, len(s.boards)),
		columns:  make(map[primitive.ObjectID]*models.Column, len(s.columns)),
		tasks:    make(map[primitive.ObjectID]*models.Task, len(s.tasks)),
	}
	for id, p := range s.projects {
		snap.projects[id] = cloneProject(p)
	}
	for id, b := range s.boards {
		snap.boards[id] = cloneBoard(b)
	}
	for id, c := range s.columns {
		snap.columns[id] = cloneColumn(c)
	}
	for id, t := range s.tasks {
		snap.tasks[id] = cloneTask(t)
	}
	return snap
}

func (s *MemoryStore) restore(snap snapshot) {
	s.projects = snap.projects
	s.boards = snap.boards
	s.columns = snap.columns
	s.tasks = snap.tasks
}

// WithTransaction holds the store lock for the duration of fn and rolls the
// four collections back to their pre-transaction snapshot if fn fails.
func (s *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.takeSnapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func cloneProject(p *models.Project) *models.Project {
	cp := *p
	cp.Members = append([]primitive.ObjectID(nil), p.Members...)
	cp.Boards = append([]primitive.ObjectID(nil), p.Boards...)
	return &cp
}

func cloneBoard(b *models.Board) *models.Board {
	cb := *b
	cb.Columns = append([]primitive.ObjectID(nil), b.Columns...)
	return &cb
}

func cloneColumn(c *models.Column) *models.Column {
	cc := *c
	cc.Tasks = append([]primitive.ObjectID(nil), c.Tasks...)
	return &cc
}

func cloneTask(t *models.Task) *models.Task {
	ct := *t
	return &ct
}

func (s *MemoryStore) InsertProject(ctx context.Context, p *models.Project) error {
	defer s.lock(ctx)()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	defer s.lock(ctx)()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProject(p), nil
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	defer s.lock(ctx)()
	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, *cloneProject(p))
	}
	return projects, nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, p *models.Project) error {
	defer s.lock(ctx)()
	if _, ok := s.projects[p.ID]; !ok {
		return ErrNotFound
	}
	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	defer s.lock(ctx)()
	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) AppendProjectBoard(ctx context.Context, projectID, boardID primitive.ObjectID) error {
	defer s.lock(ctx)()
	p, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	p.Boards = append(p.Boards, boardID)
	return nil
}

func (s *MemoryStore) PullProjectBoard(ctx context.Context, projectID, boardID primitive.ObjectID) error {
	defer s.lock(ctx)()
	p, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	p.Boards = removeID(p.Boards, boardID)
	return nil
}

func (s *MemoryStore) InsertBoard(ctx context.Context, b *models.Board) error {
	defer s.lock(ctx)()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	s.boards[b.ID] = cloneBoard(b)
	return nil
}

func (s *MemoryStore) GetBoard(ctx context.Context, id primitive.ObjectID) (*models.Board, error) {
	defer s.lock(ctx)()
	b, ok := s.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBoard(b), nil
}

func (s *MemoryStore) ListBoardsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Board, error) {
	defer s.lock(ctx)()
	var boards []models.Board
	for _, b := range s.boards {
		if b.ProjectID == projectID {
			boards = append(boards, *cloneBoard(b))
		}
	}
	return boards, nil
}

func (s *MemoryStore) UpdateBoard(ctx context.Context, b *models.Board) error {
	defer s.lock(ctx)()
	if _, ok := s.boards[b.ID]; !ok {
		return ErrNotFound
	}
	s.boards[b.ID] = cloneBoard(b)
	return nil
}

func (s *MemoryStore) DeleteBoard(ctx context.Context, id primitive.ObjectID) error {
	defer s.lock(ctx)()
	if _, ok := s.boards[id]; !ok {
		return ErrNotFound
	}
	delete(s.boards, id)
	return nil
}

func (s *MemoryStore) DeleteBoardsByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	defer s.lock(ctx)()
	var n int64
	for id, b := range s.boards {
		if b.ProjectID == projectID {
			delete(s.boards, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) InsertColumn(ctx context.Context, c *models.Column) error {
	defer s.lock(ctx)()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.columns[c.ID] = cloneColumn(c)
	return nil
}

func (s *MemoryStore) GetColumn(ctx context.Context, id primitive.ObjectID) (*models.Column, error) {
	defer s.lock(ctx)()
	c, ok := s.columns[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneColumn(c), nil
}

func (s *MemoryStore) ListColumnsByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Column, error) {
	defer s.lock(ctx)()
	var columns []models.Column
	for _, c := range s.columns {
		if c.BoardID == boardID {
			columns = append(columns, *cloneColumn(c))
		}
	}
	return columns, nil
}

func (s *MemoryStore) UpdateColumn(ctx context.Context, c *models.Column) error {
	defer s.lock(ctx)()
	if _, ok := s.columns[c.ID]; !ok {
		return ErrNotFound
	}
	s.columns[c.ID] = cloneColumn(c)
	return nil
}

func (s *MemoryStore) DeleteColumnsByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	defer s.lock(ctx)()
	var n int64
	for id, c := range s.columns {
		if c.BoardID == boardID {
			delete(s.columns, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeleteColumnsByBoards(ctx context.Context, boardIDs []primitive.ObjectID) (int64, error) {
	defer s.lock(ctx)()
	members := make(map[primitive.ObjectID]bool, len(boardIDs))
	for _, id := range boardIDs {
		members[id] = true
	}
	var n int64
	for id, c := range s.columns {
		if members[c.BoardID] {
			delete(s.columns, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) AppendColumnTask(ctx context.Context, columnID, taskID primitive.ObjectID) error {
	defer s.lock(ctx)()
	c, ok := s.columns[columnID]
	if !ok {
		return ErrNotFound
	}
	c.Tasks = append(c.Tasks, taskID)
	return nil
}

func (s *MemoryStore) PullColumnTask(ctx context.Context, columnID, taskID primitive.ObjectID) error {
	defer s.lock(ctx)()
	c, ok := s.columns[columnID]
	if !ok {
		return ErrNotFound
	}
	c.Tasks = removeID(c.Tasks, taskID)
	return nil
}

func (s *MemoryStore) InsertTask(ctx context.Context, t *models.Task) error {
	defer s.lock(ctx)()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (s *MemoryStore) GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	defer s.lock(ctx)()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *MemoryStore) ListTasksByColumn(ctx context.Context, columnID primitive.ObjectID) ([]models.Task, error) {
	defer s.lock(ctx)()
	return s.listTasks(func(t *models.Task) bool { return t.ColumnID == columnID }), nil
}

func (s *MemoryStore) ListTasksByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Task, error) {
	defer s.lock(ctx)()
	return s.listTasks(func(t *models.Task) bool { return t.BoardID == boardID }), nil
}

func (s *MemoryStore) ListTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	defer s.lock(ctx)()
	return s.listTasks(func(t *models.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *MemoryStore) listTasks(match func(*models.Task) bool) []models.Task {
	var tasks []models.Task
	for _, t := range s.tasks {
		if match(t) {
			tasks = append(tasks, *cloneTask(t))
		}
	}
	return tasks
}

func (s *MemoryStore) UpdateTask(ctx context.Context, t *models.Task) error {
	defer s.lock(ctx)()
	if _, ok := s.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	defer s.lock(ctx)()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) DeleteTasksByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	defer s.lock(ctx)()
	var n int64
	for id, t := range s.tasks {
		if t.BoardID == boardID {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	defer s.lock(ctx)()
	var n int64
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
