package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
	"github.com/jwdavis0200/TaskFlow-sub001/services"
	"github.com/jwdavis0200/TaskFlow-sub001/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *notifications.Queue) {
	t.Helper()
	entityStore := store.NewMemoryStore()
	hierarchy := services.NewHierarchyService(entityStore)
	projects := services.NewProjectService(entityStore)
	tasks := services.NewTaskService(entityStore)
	queue := notifications.NewQueue(notifications.DefaultLimit, notifications.RealClock())

	router := NewRouter(
		NewProjectHandler(projects, hierarchy, queue),
		NewBoardHandler(hierarchy, queue),
		NewTaskHandler(tasks, queue),
		NewNotificationHandler(queue),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, queue
}

func doJSON(t *testing.T, method, url string, payload interface{}, out interface{}) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("Failed to encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return resp
}

func TestProjectBoardLifecycle(t *testing.T) {
	server, _ := newTestServer(t)

	// 1. Create project P1.
	var project models.Project
	resp := doJSON(t, http.MethodPost, server.URL+"/projects", map[string]string{"name": "P1"}, &project)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	// 2. Create board "Sprint 1" under it.
	var board models.BoardView
	resp = doJSON(t, http.MethodPost, server.URL+"/boards",
		map[string]string{"name": "Sprint 1", "projectId": project.ID.Hex()}, &board)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	if len(board.Columns) != 3 {
		t.Fatalf("Expected 3 default columns, got %d", len(board.Columns))
	}
	for i, want := range []string{"To Do", "In Progress", "Done"} {
		if board.Columns[i].Name != want {
			t.Errorf("Column %d: expected %q, got %q", i, want, board.Columns[i].Name)
		}
	}

	// 3. The project read now lists exactly this board.
	var boards []models.BoardView
	resp = doJSON(t, http.MethodGet, server.URL+"/projects/"+project.ID.Hex()+"/boards", nil, &boards)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if len(boards) != 1 || boards[0].ID != board.ID {
		t.Fatalf("Expected the created board in the project read, got %d boards", len(boards))
	}

	// 4. Project listing carries board-count metadata.
	var summaries []models.ProjectSummary
	doJSON(t, http.MethodGet, server.URL+"/projects", nil, &summaries)
	if len(summaries) != 1 || summaries[0].BoardCount != 1 {
		t.Fatalf("Expected one project with boardCount=1, got %+v", summaries)
	}

	// 5. Delete the board: 0 tasks, 3 columns.
	var deletion services.BoardDeletion
	resp = doJSON(t, http.MethodDelete, server.URL+"/boards/"+board.ID.Hex(), nil, &deletion)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if deletion.TasksDeleted != 0 || deletion.ColumnsDeleted != 3 {
		t.Errorf("Expected tasksDeleted=0 columnsDeleted=3, got %+v", deletion)
	}

	// 6. The project's boards are empty again.
	doJSON(t, http.MethodGet, server.URL+"/projects/"+project.ID.Hex()+"/boards", nil, &boards)
	if len(boards) != 0 {
		t.Errorf("Expected no boards after deletion, got %d", len(boards))
	}
}

func TestProjectDeleteCascadeCounts(t *testing.T) {
	server, _ := newTestServer(t)

	var project models.Project
	doJSON(t, http.MethodPost, server.URL+"/projects", map[string]string{"name": "P1"}, &project)

	var board models.BoardView
	doJSON(t, http.MethodPost, server.URL+"/boards",
		map[string]string{"name": "Sprint 1", "projectId": project.ID.Hex()}, &board)

	var task models.Task
	resp := doJSON(t, http.MethodPost, server.URL+"/tasks", map[string]string{
		"title":     "T1",
		"projectId": project.ID.Hex(),
		"boardId":   board.ID.Hex(),
	}, &task)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var deletion services.ProjectDeletion
	resp = doJSON(t, http.MethodDelete, server.URL+"/projects/"+project.ID.Hex(), nil, &deletion)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if deletion.BoardsDeleted != 1 || deletion.ColumnsDeleted != 3 || deletion.TasksDeleted != 1 {
		t.Errorf("Unexpected cascade counts: %+v", deletion)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/tasks/"+task.ID.Hex(), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for cascaded task, got %d", resp.StatusCode)
	}
}

func TestStatusCodesAndErrorBody(t *testing.T) {
	server, _ := newTestServer(t)

	// Missing projectId query → 400.
	resp := doJSON(t, http.MethodGet, server.URL+"/boards", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 without projectId, got %d", resp.StatusCode)
	}

	// Malformed identifier → 400 with {message}.
	var errBody ErrorResponse
	resp = doJSON(t, http.MethodPost, server.URL+"/boards",
		map[string]string{"name": "B", "projectId": "garbage"}, &errBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed id, got %d", resp.StatusCode)
	}
	if errBody.Message == "" {
		t.Error("Expected a message in the error body")
	}

	// Well-formed but absent → 404.
	resp = doJSON(t, http.MethodPost, server.URL+"/boards",
		map[string]string{"name": "B", "projectId": "6563c1a5b1e2f3a4b5c6d7e8"}, &errBody)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for missing project, got %d", resp.StatusCode)
	}

	// Oversized name → 400.
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	var project models.Project
	doJSON(t, http.MethodPost, server.URL+"/projects", map[string]string{"name": "P1"}, &project)
	resp = doJSON(t, http.MethodPost, server.URL+"/boards",
		map[string]string{"name": string(long), "projectId": project.ID.Hex()}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized name, got %d", resp.StatusCode)
	}
}

func TestTaskTimerEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	var project models.Project
	doJSON(t, http.MethodPost, server.URL+"/projects", map[string]string{"name": "P1"}, &project)
	var board models.BoardView
	doJSON(t, http.MethodPost, server.URL+"/boards",
		map[string]string{"name": "B", "projectId": project.ID.Hex()}, &board)
	var task models.Task
	doJSON(t, http.MethodPost, server.URL+"/tasks", map[string]string{
		"title":     "T",
		"projectId": project.ID.Hex(),
		"boardId":   board.ID.Hex(),
	}, &task)

	var started models.Task
	resp := doJSON(t, http.MethodPost, server.URL+"/tasks/"+task.ID.Hex()+"/timer/start", nil, &started)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if !started.IsRunning {
		t.Error("Expected task running after timer start")
	}

	var stopped models.Task
	resp = doJSON(t, http.MethodPost, server.URL+"/tasks/"+task.ID.Hex()+"/timer/stop", nil, &stopped)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if stopped.IsRunning {
		t.Error("Expected task stopped after timer stop")
	}
}

func TestNotificationEndpoints(t *testing.T) {
	server, queue := newTestServer(t)

	var project models.Project
	doJSON(t, http.MethodPost, server.URL+"/projects", map[string]string{"name": "P1"}, &project)

	// The mutation left a success toast behind.
	var active []notifications.Notification
	resp := doJSON(t, http.MethodGet, server.URL+"/notifications", nil, &active)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if len(active) != 1 || active[0].Severity != notifications.SeveritySuccess {
		t.Fatalf("Expected one success notification, got %+v", active)
	}

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/notifications/%s", server.URL, active[0].ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if len(queue.Active()) != 0 {
		t.Error("Notification still active after dismissal")
	}

	// A failed mutation records an error toast.
	doJSON(t, http.MethodDelete, server.URL+"/projects/6563c1a5b1e2f3a4b5c6d7e8", nil, nil)
	found := false
	for _, n := range queue.Active() {
		if n.Severity == notifications.SeverityError {
			found = true
		}
	}
	if !found {
		t.Error("Expected an error notification after a failed delete")
	}
}
