package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
	"github.com/jwdavis0200/TaskFlow-sub001/services"
)

type TaskHandler struct {
	tasks *services.TaskService
	queue *notifications.Queue
}

func NewTaskHandler(tasks *services.TaskService, queue *notifications.Queue) *TaskHandler {
	return &TaskHandler{tasks: tasks, queue: queue}
}

// ListTasks filters by columnId, boardId or projectId query parameter.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tasks, err := h.tasks.ListTasks(r.Context(), query.Get("columnId"), query.Get("boardId"), query.Get("projectId"))
	if err != nil {
		respondError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), input)
	if err != nil {
		respondFailure(w, h.queue, err, "create task")
		return
	}
	h.queue.Show("Task created", notifications.SeveritySuccess)
	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var update services.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		respondFailure(w, h.queue, err, "update task")
		return
	}
	h.queue.Show("Task updated", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondFailure(w, h.queue, err, "delete task")
		return
	}
	h.queue.Show("Task deleted", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.StartTimer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondFailure(w, h.queue, err, "start timer")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.StopTimer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondFailure(w, h.queue, err, "stop timer")
		return
	}
	respondJSON(w, http.StatusOK, task)
}
