package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route onto a mux router.
func NewRouter(projects *ProjectHandler, boards *BoardHandler, tasks *TaskHandler, notifs *NotificationHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/projects", projects.ListProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects", projects.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", projects.GetProject).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", projects.UpdateProject).Methods(http.MethodPatch)
	r.HandleFunc("/projects/{id}", projects.DeleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/boards", projects.GetProjectBoards).Methods(http.MethodGet)

	r.HandleFunc("/boards", boards.ListBoards).Methods(http.MethodGet)
	r.HandleFunc("/boards", boards.CreateBoard).Methods(http.MethodPost)
	r.HandleFunc("/boards/{id}", boards.UpdateBoard).Methods(http.MethodPatch)
	r.HandleFunc("/boards/{id}", boards.DeleteBoard).Methods(http.MethodDelete)

	r.HandleFunc("/columns", boards.ListColumns).Methods(http.MethodGet)
	r.HandleFunc("/columns/{id}", boards.UpdateColumn).Methods(http.MethodPatch)

	r.HandleFunc("/tasks", tasks.ListTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", tasks.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", tasks.GetTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", tasks.UpdateTask).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{id}", tasks.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/tasks/{id}/timer/start", tasks.StartTimer).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/timer/stop", tasks.StopTimer).Methods(http.MethodPost)

	r.HandleFunc("/notifications", notifs.ListNotifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications", notifs.DismissAllNotifications).Methods(http.MethodDelete)
	r.HandleFunc("/notifications/{id}", notifs.DismissNotification).Methods(http.MethodDelete)

	return r
}
