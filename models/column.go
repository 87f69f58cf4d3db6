package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default columns provisioned for every new board, in display order.
// The first one is where tasks land when no column is specified.
var DefaultColumnNames = []string{"To Do", "In Progress", "Done"}

type Column struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	BoardID   primitive.ObjectID   `json:"boardId" bson:"boardId"`
	Tasks     []primitive.ObjectID `json:"tasks" bson:"tasks"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}

// ColumnView is a column with its tasks expanded for reads.
type ColumnView struct {
	Column `bson:",inline"`
	Tasks  []Task `json:"tasks"`
}
