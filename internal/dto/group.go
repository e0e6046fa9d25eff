package dto

// GroupDTO is one row of the group-selection listing.
type GroupDTO struct {
	GroupName     string `json:"group_name"`
	Writeable     bool   `json:"writeable"`
	OwnerUsername string `json:"owner_username"`
}

type GroupListResponse struct {
	Groups []GroupDTO `json:"groups"`
}

type AddGroupRequest struct {
	GroupName string `json:"group_name" binding:"required"`
}

type UpdateGroupRequest struct {
	GroupName    string `json:"group_name" binding:"required"`
	NewGroupName string `json:"new_group_name"`
}

type DeleteGroupRequest struct {
	GroupName string `json:"group_name" binding:"required"`
}

// WorkerDTO is one member of a group, owner excluded.
type WorkerDTO struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type WorkerListRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
}

type WorkerListResponse struct {
	Workers []WorkerDTO `json:"workers"`
}

type AddWorkerRequest struct {
	OwnerUserName  string `json:"owner_user_name" binding:"required"`
	GroupName      string `json:"group_name" binding:"required"`
	WorkerUserName string `json:"worker_user_name" binding:"required"`
}
