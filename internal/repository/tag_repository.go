package repository

import (
	"errors"

	"github.com/flowerhq/flower-api/internal/models"
	"gorm.io/gorm"
)

// ErrTagLastForProject is returned when deleting a tag would leave some
// project with zero tags.
var ErrTagLastForProject = errors.New("tag repository: tag is the only tag of a project")

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// ListByGroup lists all tags of a group
func (r *GormTagRepository) ListByGroup(groupID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("group_id = ?", groupID).Order("tag_id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindByGroupAndName resolves a tag by name within a group
func (r *GormTagRepository) FindByGroupAndName(groupID uint64, tagName string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("group_id = ? AND tag_name = ?", groupID, tagName).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create creates a new tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update updates a tag
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// DeleteChecked deletes a tag together with its project mappings, unless
// the tag is the last one of any mapped project. The count check and the
// deletes run in one transaction so a concurrent mapping change cannot
// slip between check and act.
func (r *GormTagRepository) DeleteChecked(tagID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint64
		err := tx.Model(&models.TagProjectMapping{}).
			Where("tag_id = ?", tagID).
			Pluck("project_id", &projectIDs).Error
		if err != nil {
			return err
		}

		for _, projectID := range projectIDs {
			var count int64
			err := tx.Model(&models.TagProjectMapping{}).
				Where("project_id = ?", projectID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count <= 1 {
				return ErrTagLastForProject
			}
		}

		if err := tx.Where("tag_id = ?", tagID).
			Delete(&models.TagProjectMapping{}).Error; err != nil {
			return err
		}

		return tx.Where("tag_id = ?", tagID).Delete(&models.Tag{}).Error
	})
}

// ResolveTagIDs maps tag names to ids within a group; unknown names are
// dropped rather than reported.
func (r *GormTagRepository) ResolveTagIDs(groupID uint64, tagNames []string) ([]uint64, error) {
	if len(tagNames) == 0 {
		return nil, nil
	}

	var tagIDs []uint64
	err := r.db.Model(&models.Tag{}).
		Where("group_id = ? AND tag_name IN ?", groupID, tagNames).
		Pluck("tag_id", &tagIDs).Error
	if err != nil {
		return nil, err
	}
	return tagIDs, nil
}

// ProjectIDsForTags returns the distinct projects of the group mapped to
// any of the given tags.
func (r *GormTagRepository) ProjectIDsForTags(groupID uint64, tagIDs []uint64) ([]uint64, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	var projectIDs []uint64
	err := r.db.Model(&models.TagProjectMapping{}).
		Distinct("tag_project_mappings.project_id").
		Joins("JOIN projects ON projects.project_id = tag_project_mappings.project_id").
		Where("tag_project_mappings.tag_id IN ? AND projects.group_id = ?", tagIDs, groupID).
		Pluck("tag_project_mappings.project_id", &projectIDs).Error
	if err != nil {
		return nil, err
	}
	return projectIDs, nil
}

// ColorsByProject returns the tag colors mapped to each given project.
// Projects with no mappings are simply absent from the result.
func (r *GormTagRepository) ColorsByProject(projectIDs []uint64) (map[uint64][]string, error) {
	colors := make(map[uint64][]string)
	if len(projectIDs) == 0 {
		return colors, nil
	}

	var rows []struct {
		ProjectID uint64
		TagColor  string
	}
	err := r.db.Model(&models.TagProjectMapping{}).
		Select("tag_project_mappings.project_id AS project_id, tags.tag_color AS tag_color").
		Joins("JOIN tags ON tags.tag_id = tag_project_mappings.tag_id").
		Where("tag_project_mappings.project_id IN ?", projectIDs).
		Order("tags.tag_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		colors[row.ProjectID] = append(colors[row.ProjectID], row.TagColor)
	}
	return colors, nil
}

// GroupColors returns the colors of every tag in the group.
func (r *GormTagRepository) GroupColors(groupID uint64) ([]string, error) {
	var colors []string
	err := r.db.Model(&models.Tag{}).
		Where("group_id = ?", groupID).
		Order("tag_id ASC").
		Pluck("tag_color", &colors).Error
	if err != nil {
		return nil, err
	}
	return colors, nil
}

// NamesForProject returns the tag names mapped to a project.
func (r *GormTagRepository) NamesForProject(projectID uint64) ([]string, error) {
	var names []string
	err := r.db.Model(&models.TagProjectMapping{}).
		Select("tags.tag_name").
		Joins("JOIN tags ON tags.tag_id = tag_project_mappings.tag_id").
		Where("tag_project_mappings.project_id = ?", projectID).
		Order("tags.tag_id ASC").
		Pluck("tags.tag_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
