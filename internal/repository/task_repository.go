package repository

import (
	"github.com/flowerhq/flower-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ListByProjects lists tasks of the given projects with worker and project
// preloaded, ordered by task id ascending.
func (r *GormTaskRepository) ListByProjects(projectIDs []uint64) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	err := r.db.Where("project_id IN ?", projectIDs).
		Preload("Worker").
		Preload("Project").
		Order("task_id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByGroup lists every task belonging to any project of the group,
// ordered by task id ascending.
func (r *GormTaskRepository) ListByGroup(groupID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Joins("JOIN projects ON projects.project_id = tasks.project_id").
		Where("projects.group_id = ?", groupID).
		Preload("Worker").
		Preload("Project").
		Order("tasks.task_id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByProjectAndTitle resolves a task by title within a project
func (r *GormTaskRepository) FindByProjectAndTitle(projectID uint64, title string) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("project_id = ? AND title = ?", projectID, title).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task. Tasks have no children, the transaction keeps the
// delete path uniform with the other removal operations.
func (r *GormTaskRepository) Delete(taskID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("task_id = ?", taskID).Delete(&models.Task{}).Error
	})
}
