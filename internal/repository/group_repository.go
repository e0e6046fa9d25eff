package repository

import (
	"errors"
	"fmt"

	"github.com/flowerhq/flower-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDeleteTasks is returned when the task stage of a group cascade fails.
	ErrDeleteTasks = errors.New("group repository: delete tasks failed")
	// ErrDeleteTagMappings is returned when the tag-mapping stage of a group cascade fails.
	ErrDeleteTagMappings = errors.New("group repository: delete tag mappings failed")
	// ErrDeleteProjects is returned when the project stage of a group cascade fails.
	ErrDeleteProjects = errors.New("group repository: delete projects failed")
	// ErrDeleteTags is returned when the tag stage of a group cascade fails.
	ErrDeleteTags = errors.New("group repository: delete tags failed")
	// ErrDeleteMembers is returned when the membership stage of a group cascade fails.
	ErrDeleteMembers = errors.New("group repository: delete members failed")
	// ErrDeleteGroup is returned when the final group stage of a cascade fails.
	ErrDeleteGroup = errors.New("group repository: delete group failed")
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// CreateWithOwner creates the group and the owner's writeable membership
// atomically. A partial failure would otherwise leave a group with no
// owner membership.
func (r *GormGroupRepository) CreateWithOwner(group *models.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		member := &models.GroupMember{
			GroupID:   group.GroupID,
			UserID:    group.OwnerUserID,
			Writeable: true,
		}

		return tx.Create(member).Error
	})
}

// FindByNameAndOwner resolves a group by (group_name, owner username).
func (r *GormGroupRepository) FindByNameAndOwner(groupName, ownerUserName string) (*models.Group, error) {
	var group models.Group
	err := r.db.
		Joins("JOIN users ON users.user_id = groups.owner_user_id").
		Where("groups.group_name = ? AND users.user_name = ?", groupName, ownerUserName).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListForUser lists the groups a user is a member of, with the owner's
// username and the member's write permission.
func (r *GormGroupRepository) ListForUser(userID uint64) ([]GroupListing, error) {
	var listings []GroupListing
	err := r.db.Model(&models.GroupMember{}).
		Select("groups.group_name AS group_name, group_members.writeable AS writeable, users.user_name AS owner_user_name").
		Joins("JOIN groups ON groups.group_id = group_members.group_id").
		Joins("JOIN users ON users.user_id = groups.owner_user_id").
		Where("group_members.user_id = ?", userID).
		Scan(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// Rename updates the group name
func (r *GormGroupRepository) Rename(groupID uint64, newName string) error {
	return r.db.Model(&models.Group{}).
		Where("group_id = ?", groupID).
		Update("group_name", newName).Error
}

// DeleteCascade removes the group and all rows beneath it in one
// transaction. Order is children before parents: tasks, tag-project
// mappings, projects, tags, memberships, then the group row. Any failing
// stage rolls back the whole cascade.
func (r *GormGroupRepository) DeleteCascade(groupID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		groupProjects := func() *gorm.DB {
			return tx.Model(&models.Project{}).
				Select("project_id").
				Where("group_id = ?", groupID)
		}

		if err := tx.Where("project_id IN (?)", groupProjects()).
			Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteTasks, err)
		}

		if err := tx.Where("project_id IN (?)", groupProjects()).
			Delete(&models.TagProjectMapping{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteTagMappings, err)
		}

		if err := tx.Where("group_id = ?", groupID).
			Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteProjects, err)
		}

		if err := tx.Where("group_id = ?", groupID).
			Delete(&models.Tag{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteTags, err)
		}

		if err := tx.Where("group_id = ?", groupID).
			Delete(&models.GroupMember{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteMembers, err)
		}

		if err := tx.Where("group_id = ?", groupID).
			Delete(&models.Group{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteGroup, err)
		}

		return nil
	})
}

// AddMember adds a membership row
func (r *GormGroupRepository) AddMember(member *models.GroupMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific membership row
func (r *GormGroupRepository) FindMember(groupID, userID uint64) (*models.GroupMember, error) {
	var member models.GroupMember
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListWorkers lists the members of a group excluding the owner.
func (r *GormGroupRepository) ListWorkers(groupID uint64, ownerUserName string) ([]models.User, error) {
	var workers []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN group_members ON group_members.user_id = users.user_id").
		Where("group_members.group_id = ? AND users.user_name != ?", groupID, ownerUserName).
		Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}
