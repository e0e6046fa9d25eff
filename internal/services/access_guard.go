package services

import (
	"errors"
	"fmt"

	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUnauthorizedAction = errors.New("unauthorized action")
	ErrGroupNotFound      = errors.New("group not found or user is not the owner")
)

// Actor is the session-resolved identity threaded into every mutating
// operation. It is resolved once per request by the auth middleware and
// passed down, never re-queried.
type Actor struct {
	UserID   uint64
	UserName string
}

// AccessGuard resolves groups and checks write rights before any mutation
// proceeds. The historical contract is a name-equality check: the
// caller-supplied owner username must equal the session-resolved username,
// and the group is then resolved by the (group name, owner name) pair.
// StrictMembership layers a writeable-membership check on top without
// changing the base behavior.
type AccessGuard struct {
	groupRepo        repository.GroupRepository
	strictMembership bool
}

// NewAccessGuard creates a new AccessGuard.
func NewAccessGuard(groupRepo repository.GroupRepository, strictMembership bool) *AccessGuard {
	return &AccessGuard{
		groupRepo:        groupRepo,
		strictMembership: strictMembership,
	}
}

// ResolveOwnedGroup authorizes a mutation: the claimed owner must be the
// acting user, and the group must exist under that owner. No state is
// touched when either check fails.
func (g *AccessGuard) ResolveOwnedGroup(groupName, ownerUserName string, actor Actor) (*models.Group, error) {
	if ownerUserName != actor.UserName {
		return nil, ErrUnauthorizedAction
	}

	group, err := g.groupRepo.FindByNameAndOwner(groupName, ownerUserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}

	if g.strictMembership {
		member, err := g.groupRepo.FindMember(group.GroupID, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnauthorizedAction
			}
			return nil, fmt.Errorf("failed to verify membership: %w", err)
		}
		if !member.Writeable {
			return nil, ErrUnauthorizedAction
		}
	}

	return group, nil
}

// ResolveGroup resolves a group for read paths purely by the
// (owner username, group name) pair; knowing the pair is the access check.
func (g *AccessGuard) ResolveGroup(groupName, ownerUserName string) (*models.Group, error) {
	group, err := g.groupRepo.FindByNameAndOwner(groupName, ownerUserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}
	return group, nil
}
