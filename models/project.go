package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	Owner       *primitive.ObjectID  `json:"owner,omitempty" bson:"owner,omitempty"`
	Members     []primitive.ObjectID `json:"members,omitempty" bson:"members,omitempty"`
	Boards      []primitive.ObjectID `json:"boards" bson:"boards"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
}

// ProjectSummary is the list-view shape: the project plus how many boards it has.
type ProjectSummary struct {
	Project    `bson:",inline"`
	BoardCount int `json:"boardCount" bson:"-"`
}
