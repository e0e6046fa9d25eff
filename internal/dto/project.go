package dto

// ProjectDTO is one row of the project listing with its tag colors.
type ProjectDTO struct {
	ProjectName string   `json:"project_name"`
	TagColors   []string `json:"tag_colors"`
}

type ProjectListRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
}

type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

type ProjectDetailRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	ProjectName   string `json:"project_name" binding:"required"`
}

type ProjectDetailResponse struct {
	ProjectName        string   `json:"project_name"`
	ProjectDescription string   `json:"project_description"`
	Tags               []string `json:"tags"`
}

type AddProjectRequest struct {
	OwnerUserName      string   `json:"owner_user_name" binding:"required"`
	GroupName          string   `json:"group_name" binding:"required"`
	ProjectName        string   `json:"project_name" binding:"required"`
	ProjectDescription string   `json:"project_description"`
	Tags               []string `json:"tags"`
}

// UpdateProjectRequest renames and/or re-describes a project. Empty new
// fields keep the current values.
type UpdateProjectRequest struct {
	OwnerUserName         string `json:"owner_user_name" binding:"required"`
	GroupName             string `json:"group_name" binding:"required"`
	ProjectName           string `json:"project_name" binding:"required"`
	NewProjectName        string `json:"new_project_name"`
	NewProjectDescription string `json:"new_project_description"`
}

type DeleteProjectRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	ProjectName   string `json:"project_name" binding:"required"`
}
