package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
	"github.com/jwdavis0200/TaskFlow-sub001/services"
)

type BoardHandler struct {
	hierarchy *services.HierarchyService
	queue     *notifications.Queue
}

func NewBoardHandler(hierarchy *services.HierarchyService, queue *notifications.Queue) *BoardHandler {
	return &BoardHandler{hierarchy: hierarchy, queue: queue}
}

// ListBoards requires a projectId query parameter.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "projectId query parameter is required"})
		return
	}

	boards, err := h.hierarchy.GetBoardsForProject(r.Context(), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boards)
}

// CreateBoard provisions the board together with its three default columns.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	board, err := h.hierarchy.CreateBoard(r.Context(), payload.Name, payload.ProjectID)
	if err != nil {
		respondFailure(w, h.queue, err, "create board")
		return
	}
	h.queue.Show("Board created", notifications.SeveritySuccess)
	respondJSON(w, http.StatusCreated, board)
}

func (h *BoardHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	board, err := h.hierarchy.RenameBoard(r.Context(), mux.Vars(r)["id"], payload.Name)
	if err != nil {
		respondFailure(w, h.queue, err, "rename board")
		return
	}
	h.queue.Show("Board updated", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, board)
}

// DeleteBoard cascades through the board's columns and tasks and reports the
// deletion counts.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	deletion, err := h.hierarchy.DeleteBoard(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondFailure(w, h.queue, err, "delete board")
		return
	}
	h.queue.Show("Board deleted", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, deletion)
}

// ListColumns requires a boardId query parameter.
func (h *BoardHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	boardID := r.URL.Query().Get("boardId")
	if boardID == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "boardId query parameter is required"})
		return
	}

	columns, err := h.hierarchy.GetColumnsForBoard(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, columns)
}

func (h *BoardHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	column, err := h.hierarchy.RenameColumn(r.Context(), mux.Vars(r)["id"], payload.Name)
	if err != nil {
		respondFailure(w, h.queue, err, "rename column")
		return
	}
	h.queue.Show("Column updated", notifications.SeveritySuccess)
	respondJSON(w, http.StatusOK, column)
}
