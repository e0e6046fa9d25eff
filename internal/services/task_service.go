package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/flowerhq/flower-api/internal/constants"
	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTimeFormat = errors.New("invalid time format, expected YYYY-MM-DD HH:MM:SS")
	ErrEmptyProjectName  = errors.New("project name cannot be empty")
)

// TaskListing is a task paired with the tag colors resolved for it.
type TaskListing struct {
	Task      models.Task
	TagColors []string
}

// TaskService provides task CRUD and the set-based task filtering reads.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	tagRepo     repository.TagRepository
	userRepo    repository.UserRepository
	guard       *AccessGuard
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	tagRepo repository.TagRepository,
	userRepo repository.UserRepository,
	guard *AccessGuard,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
		userRepo:    userRepo,
		guard:       guard,
	}
}

// parseTaskTime parses the fixed wire layout. Malformed client input is an
// expected condition and comes back as a validation error.
func parseTaskTime(value string) (time.Time, error) {
	t, err := time.Parse(constants.TaskTimeLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidTimeFormat
	}
	return t, nil
}

// AddTaskInput represents input for creating a task.
type AddTaskInput struct {
	OwnerUserName string
	GroupName     string
	ProjectName   string
	WorkerName    string
	Title         string
	Description   string
	StartTime     string
	EndTime       string
}

// AddTask creates a task in a project of the actor's group. The worker
// must be a registered user but is not required to be a group member.
func (s *TaskService) AddTask(actor Actor, input AddTaskInput) error {
	startTime, err := parseTaskTime(input.StartTime)
	if err != nil {
		return err
	}
	endTime, err := parseTaskTime(input.EndTime)
	if err != nil {
		return err
	}

	group, err := s.guard.ResolveOwnedGroup(input.GroupName, input.OwnerUserName, actor)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindByGroupAndName(group.GroupID, input.ProjectName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	worker, err := s.userRepo.FindByUserName(input.WorkerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to find worker: %w", err)
	}

	task := &models.Task{
		ProjectID:    project.ProjectID,
		WorkerUserID: worker.UserID,
		Title:        input.Title,
		Description:  input.Description,
		StartTime:    startTime,
		EndTime:      endTime,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// UpdateTaskInput represents input for patching a task located by
// (group, project, title). Empty new fields keep the current values.
type UpdateTaskInput struct {
	OwnerUserName  string
	GroupName      string
	ProjectName    string
	Title          string
	NewWorkerName  string
	NewTitle       string
	NewDescription string
	NewStartTime   string
	NewEndTime     string
}

// UpdateTask patches a task.
func (s *TaskService) UpdateTask(actor Actor, input UpdateTaskInput) error {
	group, err := s.guard.ResolveOwnedGroup(input.GroupName, input.OwnerUserName, actor)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindByGroupAndName(group.GroupID, input.ProjectName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	task, err := s.taskRepo.FindByProjectAndTitle(project.ProjectID, input.Title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if input.NewWorkerName != "" {
		worker, err := s.userRepo.FindByUserName(input.NewWorkerName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWorkerNotFound
			}
			return fmt.Errorf("failed to find worker: %w", err)
		}
		task.WorkerUserID = worker.UserID
	}
	if input.NewTitle != "" {
		task.Title = input.NewTitle
	}
	if input.NewDescription != "" {
		task.Description = input.NewDescription
	}
	if input.NewStartTime != "" {
		startTime, err := parseTaskTime(input.NewStartTime)
		if err != nil {
			return err
		}
		task.StartTime = startTime
	}
	if input.NewEndTime != "" {
		endTime, err := parseTaskTime(input.NewEndTime)
		if err != nil {
			return err
		}
		task.EndTime = endTime
	}

	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask removes a task located by (group, project, title).
func (s *TaskService) DeleteTask(actor Actor, ownerUserName, groupName, projectName, title string) error {
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

	task, err := s.taskRepo.FindByProjectAndTitle(project.ProjectID, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.TaskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// TasksByProject returns the tasks of one project with the colors of the
// tags mapped to that project.
func (s *TaskService) TasksByProject(ownerUserName, groupName, projectName string) ([]TaskListing, error) {
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

	tasks, err := s.taskRepo.ListByProjects([]uint64{project.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	colors, err := s.tagRepo.ColorsByProject([]uint64{project.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag colors: %w", err)
	}

	return listingsWithProjectColors(tasks, colors), nil
}

// TasksByTagSet returns tasks filtered by a set of tag names. An empty set
// means every task of the group, with the colors of all the group's tags
// attached; with a non-empty set the filter resolves names to tags, tags
// to projects, projects to tasks, and each task carries the colors mapped
// to its own project. Unresolvable names or an empty project set yield an
// empty result, not an error.
func (s *TaskService) TasksByTagSet(ownerUserName, groupName string, tagNames []string) ([]TaskListing, error) {
	group, err := s.guard.ResolveGroup(groupName, ownerUserName)
	if err != nil {
		return nil, err
	}

	if len(tagNames) == 0 {
		tasks, err := s.taskRepo.ListByGroup(group.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}

		groupColors, err := s.tagRepo.GroupColors(group.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag colors: %w", err)
		}
		if groupColors == nil {
			groupColors = []string{}
		}

		listings := make([]TaskListing, len(tasks))
		for i, task := range tasks {
			listings[i] = TaskListing{Task: task, TagColors: groupColors}
		}
		return listings, nil
	}

	tagIDs, err := s.tagRepo.ResolveTagIDs(group.GroupID, tagNames)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return []TaskListing{}, nil
	}

	projectIDs, err := s.tagRepo.ProjectIDsForTags(group.GroupID, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve projects: %w", err)
	}
	if len(projectIDs) == 0 {
		return []TaskListing{}, nil
	}

	tasks, err := s.taskRepo.ListByProjects(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	colors, err := s.tagRepo.ColorsByProject(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag colors: %w", err)
	}

	return listingsWithProjectColors(tasks, colors), nil
}

// TasksByProjectName returns the tasks of every project whose name
// contains the substring.
func (s *TaskService) TasksByProjectName(ownerUserName, groupName, substring string) ([]TaskListing, error) {
	if substring == "" {
		return nil, ErrEmptyProjectName
	}

	group, err := s.guard.ResolveGroup(groupName, ownerUserName)
	if err != nil {
		return nil, err
	}

	projectIDs, err := s.projectRepo.IDsByNameLike(group.GroupID, substring)
	if err != nil {
		return nil, fmt.Errorf("failed to match projects: %w", err)
	}
	if len(projectIDs) == 0 {
		return []TaskListing{}, nil
	}

	tasks, err := s.taskRepo.ListByProjects(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	colors, err := s.tagRepo.ColorsByProject(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag colors: %w", err)
	}

	return listingsWithProjectColors(tasks, colors), nil
}

func listingsWithProjectColors(tasks []models.Task, colors map[uint64][]string) []TaskListing {
	listings := make([]TaskListing, len(tasks))
	for i, task := range tasks {
		taskColors := colors[task.ProjectID]
		if taskColors == nil {
			taskColors = []string{}
		}
		listings[i] = TaskListing{Task: task, TagColors: taskColors}
	}
	return listings
}
