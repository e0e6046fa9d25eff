package services

import (
	"errors"
	"fmt"

	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectDetail is a project with its tag names resolved.
type ProjectDetail struct {
	ProjectName        string
	ProjectDescription string
	Tags               []string
}

// ProjectListing is one row of the project list with its tag colors.
type ProjectListing struct {
	ProjectName string
	TagColors   []string
}

// ProjectService provides project CRUD and the project/tag association
// views.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	tagRepo     repository.TagRepository
	guard       *AccessGuard
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, tagRepo repository.TagRepository, guard *AccessGuard) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
		guard:       guard,
	}
}

// GetProjectDetail returns a project's name, description and tag names.
func (s *ProjectService) GetProjectDetail(ownerUserName, groupName, projectName string) (*ProjectDetail, error) {
	group, err := s.guard.ResolveGroup(groupName, ownerUserName)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByGroupAndName(group.GroupID, projectName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	tags, err := s.tagRepo.NamesForProject(project.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}

	return &ProjectDetail{
		ProjectName:        project.ProjectName,
		ProjectDescription: project.ProjectDescription,
		Tags:               tags,
	}, nil
}

// AddProject creates a project and maps the given tag names to it. Names
// that do not resolve within the group are skipped.
func (s *ProjectService) AddProject(actor Actor, ownerUserName, groupName, projectName, projectDescription string, tagNames []string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	tagIDs, err := s.tagRepo.ResolveTagIDs(group.GroupID, tagNames)
	if err != nil {
		return fmt.Errorf("failed to resolve tags: %w", err)
	}

	project := &models.Project{
		GroupID:            group.GroupID,
		ProjectName:        projectName,
		ProjectDescription: projectDescription,
	}

	if err := s.projectRepo.CreateWithTags(project, tagIDs); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// UpdateProject patches a project. Empty new fields keep the current
// values.
func (s *ProjectService) UpdateProject(actor Actor, ownerUserName, groupName, projectName, newProjectName, newProjectDescription string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindByGroupAndName(group.GroupID, projectName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if newProjectName != "" {
		project.ProjectName = newProjectName
	}
	if newProjectDescription != "" {
		project.ProjectDescription = newProjectDescription
	}

	if err := s.projectRepo.Update(project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// DeleteProject removes a project together with its tasks and tag
// mappings. Group-scoped tags survive.
func (s *ProjectService) DeleteProject(actor Actor, ownerUserName, groupName, projectName string) error {
	group, err := s.guard.ResolveOwnedGroup(groupName, ownerUserName, actor)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindByGroupAndName(group.GroupID, projectName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.DeleteCascade(project.ProjectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ListProjects returns every project in the group with its tag colors. A
// project with no tags yields an empty color list.
func (s *ProjectService) ListProjects(ownerUserName, groupName string) ([]ProjectListing, error) {
	group, err := s.guard.ResolveGroup(groupName, ownerUserName)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByGroup(group.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projectIDs := make([]uint64, len(projects))
	for i, project := range projects {
		projectIDs[i] = project.ProjectID
	}

	colors, err := s.tagRepo.ColorsByProject(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag colors: %w", err)
	}

	listings := make([]ProjectListing, len(projects))
	for i, project := range projects {
		projectColors := colors[project.ProjectID]
		if projectColors == nil {
			projectColors = []string{}
		}
		listings[i] = ProjectListing{
			ProjectName: project.ProjectName,
			TagColors:   projectColors,
		}
	}

	return listings, nil
}
