package services

import (
	"errors"
	"fmt"

	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagInUse    = errors.New("cannot delete the only tag of a project")
)

// TagService provides tag CRUD with the last-tag deletion guard.
type TagService struct {
	tagRepo repository.TagRepository
	guard   *AccessGuard
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository, guard *AccessGuard) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		guard:   guard,
	}
}

// ListTags returns all tags of a group.
func (s *TagService) ListTags(ownerUserName, groupName string) ([]models.Tag, error) {
	group, err := s.guard.ResolveGroup(groupName, ownerUserName)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListByGroup(group.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

// AddTag creates a tag in the actor's group.
func (s *TagService) AddTag(actor Actor, ownerUserName, groupName, tagName, tagColor string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	tag := &models.Tag{
		GroupID:  group.GroupID,
		TagName:  tagName,
		TagColor: tagColor,
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// UpdateTag patches a tag. Empty new fields keep the current values.
func (s *TagService) UpdateTag(actor Actor, ownerUserName, groupName, tagName, newTagName, newTagColor string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.FindByGroupAndName(group.GroupID, tagName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}

	if newTagName != "" {
		tag.TagName = newTagName
	}
	if newTagColor != "" {
		tag.TagColor = newTagColor
	}

	if err := s.tagRepo.Update(tag); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	return nil
}

// DeleteTag removes a tag and its project mappings. The deletion is
// refused when the tag is the last remaining tag of any project.
func (s *TagService) DeleteTag(actor Actor, ownerUserName, groupName, tagName string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.FindByGroupAndName(group.GroupID, tagName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}

	if err := s.tagRepo.DeleteChecked(tag.TagID); err != nil {
		if errors.Is(err, repository.ErrTagLastForProject) {
			return ErrTagInUse
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}
