package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
)

type NotificationHandler struct {
	queue *notifications.Queue
}

func NewNotificationHandler(queue *notifications.Queue) *NotificationHandler {
	return &NotificationHandler{queue: queue}
}

// ListNotifications returns the currently visible notifications in insertion
// order.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queue.Active())
}

// DismissNotification removes one notification; unknown ids are a no-op.
func (h *NotificationHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.queue.Dismiss(mux.Vars(r)["id"])
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification dismissed"})
}

// DismissAllNotifications clears the queue.
func (h *NotificationHandler) DismissAllNotifications(w http.ResponseWriter, r *http.Request) {
	h.queue.DismissAll()
	respondJSON(w, http.StatusOK, map[string]string{"message": "All notifications dismissed"})
}
