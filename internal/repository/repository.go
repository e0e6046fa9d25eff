package repository

import (
	"github.com/flowerhq/flower-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUserName finds a user by username
	FindByUserName(userName string) (*models.User, error)

	// UserNameExists reports whether a username is already taken
	UserNameExists(userName string) (bool, error)

	// EmailExists reports whether an email is already registered
	EmailExists(email string) (bool, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// FindByID finds a session by its token
	FindByID(sessionID string) (*models.Session, error)

	// FindByUserID finds the session of a user, if any
	FindByUserID(userID uint64) (*models.Session, error)

	// Create inserts a new session row
	Create(session *models.Session) error

	// Replace overwrites an existing session row in place (same user_id,
	// new token and expiry)
	Replace(session *models.Session) error

	// Delete removes a session row by token
	Delete(sessionID string) error

	// DeleteAll removes every session row
	DeleteAll() error
}

// GroupListing is one row of the per-user group listing.
type GroupListing struct {
	GroupName     string
	Writeable     bool
	OwnerUserName string
}

// GroupRepository defines the interface for group and membership data access
type GroupRepository interface {
	// CreateWithOwner creates the group and the owner's writeable
	// membership in one transaction
	CreateWithOwner(group *models.Group) error

	// FindByNameAndOwner resolves a group by its name and the owner's
	// username
	FindByNameAndOwner(groupName, ownerUserName string) (*models.Group, error)

	// ListForUser lists the groups a user is a member of
	ListForUser(userID uint64) ([]GroupListing, error)

	// Rename updates the group name
	Rename(groupID uint64, newName string) error

	// DeleteCascade removes the group and everything beneath it in one
	// transaction, children before parents
	DeleteCascade(groupID uint64) error

	// AddMember adds a membership row
	AddMember(member *models.GroupMember) error

	// FindMember finds a specific membership row
	FindMember(groupID, userID uint64) (*models.GroupMember, error)

	// ListWorkers lists the members of a group excluding the owner
	ListWorkers(groupID uint64, ownerUserName string) ([]models.User, error)
}

// TagRepository defines the interface for tag data access and the
// tag/project association pipeline
type TagRepository interface {
	// ListByGroup lists all tags of a group
	ListByGroup(groupID uint64) ([]models.Tag, error)

	// FindByGroupAndName resolves a tag by name within a group
	FindByGroupAndName(groupID uint64, tagName string) (*models.Tag, error)

	// Create creates a new tag
	Create(tag *models.Tag) error

	// Update updates a tag
	Update(tag *models.Tag) error

	// DeleteChecked deletes a tag and its mappings unless some project
	// would be left without any tag; the whole check-then-delete runs in
	// one transaction
	DeleteChecked(tagID uint64) error

	// ResolveTagIDs maps tag names to ids within a group; unknown names
	// are dropped
	ResolveTagIDs(groupID uint64, tagNames []string) ([]uint64, error)

	// ProjectIDsForTags returns the distinct projects of the group mapped
	// to any of the given tags
	ProjectIDsForTags(groupID uint64, tagIDs []uint64) ([]uint64, error)

	// ColorsByProject returns the tag colors mapped to each given project
	ColorsByProject(projectIDs []uint64) (map[uint64][]string, error)

	// GroupColors returns the colors of every tag in the group
	GroupColors(groupID uint64) ([]string, error)

	// NamesForProject returns the tag names mapped to a project
	NamesForProject(projectID uint64) ([]string, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// FindByGroupAndName resolves a project by name within a group
	FindByGroupAndName(groupID uint64, projectName string) (*models.Project, error)

	// ListByGroup lists all projects of a group
	ListByGroup(groupID uint64) ([]models.Project, error)

	// CreateWithTags creates the project and its initial tag mappings in
	// one transaction
	CreateWithTags(project *models.Project, tagIDs []uint64) error

	// Update updates a project
	Update(project *models.Project) error

	// DeleteCascade removes the project, its tasks and its tag mappings
	// in one transaction
	DeleteCascade(projectID uint64) error

	// IDsByNameLike returns projects of the group whose name contains the
	// substring
	IDsByNameLike(groupID uint64, substring string) ([]uint64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// ListByProjects lists tasks of the given projects, worker and
	// project preloaded, ordered by task id
	ListByProjects(projectIDs []uint64) ([]models.Task, error)

	// ListByGroup lists every task belonging to any project of the group
	ListByGroup(groupID uint64) ([]models.Task, error)

	// FindByProjectAndTitle resolves a task by title within a project
	FindByProjectAndTitle(projectID uint64, title string) (*models.Task, error)

	// Create creates a new task
	Create(task *models.Task) error

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(taskID uint64) error
}
