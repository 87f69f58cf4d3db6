package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusToDo       TaskStatus = "to-do"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	ColumnID    primitive.ObjectID  `json:"columnId" bson:"columnId"`
	BoardID     primitive.ObjectID  `json:"boardId" bson:"boardId"`
	ProjectID   primitive.ObjectID  `json:"projectId" bson:"projectId"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	DueDate     *time.Time          `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Status      TaskStatus          `json:"status" bson:"status"`
	Priority    TaskPriority        `json:"priority" bson:"priority"`

	// Time tracking. TimeSpent accumulates whole seconds; TrackingStartedAt is
	// set only while IsRunning.
	TimeSpent         int64      `json:"timeSpent" bson:"timeSpent"`
	IsRunning         bool       `json:"isRunning" bson:"isRunning"`
	TrackingStartedAt *time.Time `json:"trackingStartedAt,omitempty" bson:"trackingStartedAt,omitempty"`

	IsCompleted bool      `json:"isCompleted" bson:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
