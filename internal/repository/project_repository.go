package repository

import (
	"github.com/flowerhq/flower-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByGroupAndName resolves a project by name within a group
func (r *GormProjectRepository) FindByGroupAndName(groupID uint64, projectName string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("group_id = ? AND project_name = ?", groupID, projectName).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByGroup lists all projects of a group
func (r *GormProjectRepository) ListByGroup(groupID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("group_id = ?", groupID).
		Order("project_id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateWithTags creates the project and its initial tag mappings in one
// transaction.
func (r *GormProjectRepository) CreateWithTags(project *models.Project, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		for _, tagID := range tagIDs {
			mapping := &models.TagProjectMapping{
				TagID:     tagID,
				ProjectID: project.ProjectID,
			}
			if err := tx.Create(mapping).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteCascade removes the project, its tasks and its tag mappings in one
// transaction. The group-scoped tags themselves survive, they may be
// shared by other projects.
func (r *GormProjectRepository) DeleteCascade(projectID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).
			Delete(&models.TagProjectMapping{}).Error; err != nil {
			return err
		}

		return tx.Where("project_id = ?", projectID).Delete(&models.Project{}).Error
	})
}

// IDsByNameLike returns projects of the group whose name contains the
// substring. Match semantics are the engine's LIKE with a %substring%
// pattern.
func (r *GormProjectRepository) IDsByNameLike(groupID uint64, substring string) ([]uint64, error) {
	var projectIDs []uint64
	err := r.db.Model(&models.Project{}).
		Where("group_id = ? AND project_name LIKE ?", groupID, "%"+substring+"%").
		Pluck("project_id", &projectIDs).Error
	if err != nil {
		return nil, err
	}
	return projectIDs, nil
}
