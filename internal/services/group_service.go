package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidGroupName = errors.New("group name cannot be empty")
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrAlreadyMember    = errors.New("user is already a member of this group")
)

// GroupService provides group CRUD, membership management and the
// cascading-delete orchestration.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	guard     *AccessGuard
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository, guard *AccessGuard) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		guard:     guard,
	}
}

// ListGroups returns every group the user is a member of, with the owner's
// username and the member's write permission.
func (s *GroupService) ListGroups(userID uint64) ([]repository.GroupListing, error) {
	listings, err := s.groupRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return listings, nil
}

// CreateGroup creates a group owned by the actor, who becomes a writeable
// member in the same transaction.
func (s *GroupService) CreateGroup(actor Actor, groupName string) (*models.Group, error) {
	if strings.TrimSpace(groupName) == "" {
		return nil, ErrInvalidGroupName
	}

	group := &models.Group{
		GroupName:   groupName,
		OwnerUserID: actor.UserID,
	}

	if err := s.groupRepo.CreateWithOwner(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// RenameGroup renames a group owned by the actor. An empty new name means
// keep the current one; the returned flag reports whether a rename
// actually happened.
func (s *GroupService) RenameGroup(actor Actor, groupName, newGroupName string) (bool, error) {
	group, err := s.guard.ResolveOwnedGroup(groupName, actor.UserName, actor)
	if err != nil {
		return false, err
	}

	if newGroupName == "" {
		return false, nil
	}

	if err := s.groupRepo.Rename(group.GroupID, newGroupName); err != nil {
		return false, fmt.Errorf("failed to rename group: %w", err)
	}

	return true, nil
}

// DeleteGroup removes a group owned by the actor together with everything
// beneath it.
func (s *GroupService) DeleteGroup(actor Actor, groupName string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, actor.UserName, actor)
	if err != nil {
		return err
	}

	if err := s.groupRepo.DeleteCascade(group.GroupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	return nil
}

// AddWorker adds a registered user to the actor's group as a read-only
// member.
func (s *GroupService) AddWorker(actor Actor, ownerUserName, groupName, workerUserName string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	worker, err := s.userRepo.FindByUserName(workerUserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to find worker: %w", err)
	}

	if _, err := s.groupRepo.FindMember(group.GroupID, worker.UserID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.GroupMember{
		GroupID:   group.GroupID,
		UserID:    worker.UserID,
		Writeable: false,
	}

	if err := s.groupRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add worker: %w", err)
	}

	return nil
}

// ListWorkers returns the members of a group excluding the owner.
func (s *GroupService) ListWorkers(ownerUserName, groupName string) ([]models.User, error) {
	group, err := s.guard.ResolveGroup(groupName, ownerUserName)
	if err != nil {
		return nil, err
	}

	workers, err := s.groupRepo.ListWorkers(group.GroupID, ownerUserName)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	return workers, nil
}
