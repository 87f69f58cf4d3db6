package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 500
	maxTitleLen       = 100
	maxTaskDescLen    = 1000
)

// parseID validates identifier format before any store access, so malformed
// input never opens a transaction.
func parseID(kind, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s ID format", ErrInvalidArgument, kind)
	}
	return id, nil
}

func validateRequired(field, value string, limit int) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	if len(value) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidArgument, field, limit)
	}
	return nil
}

func validateOptional(field, value string, limit int) error {
	if len(value) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidArgument, field, limit)
	}
	return nil
}
