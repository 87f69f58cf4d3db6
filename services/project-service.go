package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jwdavis0200/TaskFlow-sub001/models"
	"github.com/jwdavis0200/TaskFlow-sub001/store"
)

// ProjectService covers single-document project operations. Deletion cascades
// live in HierarchyService.
type ProjectService struct {
	store store.EntityStore
}

func NewProjectService(entityStore store.EntityStore) *ProjectService {
	return &ProjectService{store: entityStore}
}

func (s *ProjectService) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	if err := validateRequired("project name", name, maxNameLen); err != nil {
		return nil, err
	}
	if err := validateOptional("project description", description, maxDescriptionLen); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		Boards:      []primitive.ObjectID{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	projectObjectID, err := parseID("project", projectID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.GetProject(ctx, projectObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
		}
		return nil, err
	}
	return project, nil
}

// ListProjects returns every project with its board count. The count comes
// from the child query, so listings stay honest even if the denormalized
// array has drifted.
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ProjectSummary, 0, len(projects))
	for _, project := range projects {
		boards, err := s.store.ListBoardsByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ProjectSummary{Project: project, BoardCount: len(boards)})
	}
	return summaries, nil
}

// ProjectUpdate carries a partial project patch; nil fields are left alone.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, update ProjectUpdate) (*models.Project, error) {
	projectObjectID, err := parseID("project", projectID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if err := validateRequired("project name", *update.Name, maxNameLen); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		if err := validateOptional("project description", *update.Description, maxDescriptionLen); err != nil {
			return nil, err
		}
	}

	project, err := s.store.GetProject(ctx, projectObjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
		}
		return nil, err
	}

	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
