package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Board struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	ProjectID primitive.ObjectID   `json:"projectId" bson:"projectId"`
	Columns   []primitive.ObjectID `json:"columns" bson:"columns"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}

// BoardView is a board with its columns (and their tasks) expanded for reads.
type BoardView struct {
	Board   `bson:",inline"`
	Columns []ColumnView `json:"columns"`
}
