package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
	"github.com/jwdavis0200/TaskFlow-sub001/services"
)

type ProjectHandler struct {
	projects  *services.ProjectService
	hierarchy *services.HierarchyService
	queue     *notifications.Queue
}

func NewProjectHandler(projects *services.ProjectService, hierarchy *services.HierarchyService, queue *notifications.Queue) *ProjectHandler {
	return &ProjectHandler{projects: projects, hierarchy: hierarchy, queue: queue}
}

// ListProjects returns every project with board-count metadata.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.projects.ListProjects(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	project, err := h.projects.CreateProject(r.Context(), payload.Name, payload.Description)
	if err != nil {
		respondFailure(w, h.queue, err, "create project")
		return
	}
	h.queue.Show("Project created", notifications.SeveritySuccess)
	respondJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var update services.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	project, err := h.projects.UpdateProject(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		respondFailure(w, h.queue, err, "update project")
		return
	}
	h.queue.Show("Project updated", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, project)
}

// DeleteProject cascades through boards, columns and tasks and reports the
// per-kind deletion counts.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	deletion, err := h.hierarchy.DeleteProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondFailure(w, h.queue, err, "delete project")
		return
	}
	h.queue.Show("Project deleted", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, deletion)
}

// GetProjectBoards returns the project's boards with columns and tasks
// expanded.
func (h *ProjectHandler) GetProjectBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.hierarchy.GetBoardsForProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boards)
}
