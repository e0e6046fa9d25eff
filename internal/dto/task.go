package dto

import (
	"github.com/flowerhq/flower-api/internal/constants"
	"github.com/flowerhq/flower-api/internal/models"
)

// TaskDTO is the wire form shared by every task-listing endpoint. Times
// are rendered in the same layout they are submitted in.
type TaskDTO struct {
	TaskTitle   string   `json:"task_title"`
	WorkerName  string   `json:"worker_name"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description"`
	ProjectName string   `json:"project_name"`
	TagColors   []string `json:"tag_colors"`
}

// ToTaskDTO converts a task (with Worker and Project preloaded) and the
// tag colors resolved for it.
func ToTaskDTO(task models.Task, tagColors []string) TaskDTO {
	if tagColors == nil {
		tagColors = []string{}
	}
	return TaskDTO{
		TaskTitle:   task.Title,
		WorkerName:  task.Worker.UserName,
		StartTime:   task.StartTime.Format(constants.TaskTimeLayout),
		EndTime:     task.EndTime.Format(constants.TaskTimeLayout),
		Description: task.Description,
		ProjectName: task.Project.ProjectName,
		TagColors:   tagColors,
	}
}

type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
}

type TaskListByTagListRequest struct {
	OwnerUserName string   `json:"owner_user_name" binding:"required"`
	GroupName     string   `json:"group_name" binding:"required"`
	Tags          []string `json:"tags"`
}

// TaskListByProjectNameRequest filters tasks by a project-name substring.
// The substring is validated in the service so an empty value surfaces as
// a business error rather than a bind failure.
type TaskListByProjectNameRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	ProjectName   string `json:"project_name"`
}

type TaskDetailRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	ProjectName   string `json:"project_name" binding:"required"`
}

type AddTaskRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	ProjectName   string `json:"project_name" binding:"required"`
	WorkerName    string `json:"worker_name" binding:"required"`
	TaskTitle     string `json:"task_title" binding:"required"`
	Description   string `json:"description"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
}

// UpdateTaskRequest patches a task located by (group, project, title).
// Empty new fields keep the current values.
type UpdateTaskRequest struct {
	OwnerUserName  string `json:"owner_user_name" binding:"required"`
	GroupName      string `json:"group_name" binding:"required"`
	ProjectName    string `json:"project_name" binding:"required"`
	TaskTitle      string `json:"task_title" binding:"required"`
	NewWorkerName  string `json:"new_worker_name"`
	NewTaskTitle   string `json:"new_task_title"`
	NewDescription string `json:"new_description"`
	NewStartTime   string `json:"new_start_time"`
	NewEndTime     string `json:"new_end_time"`
}

type DeleteTaskRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	ProjectName   string `json:"project_name" binding:"required"`
	TaskTitle     string `json:"task_title" binding:"required"`
}
