package dto

import "github.com/flowerhq/flower-api/internal/models"

type TagDTO struct {
	TagName  string `json:"tag_name"`
	TagColor string `json:"tag_color"`
}

// ToTagDTO converts a tag model to its wire form.
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		TagName:  tag.TagName,
		TagColor: tag.TagColor,
	}
}

type TagListRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
}

type TagListResponse struct {
	Tags []TagDTO `json:"tags"`
}

type AddTagRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	TagName       string `json:"tag_name" binding:"required"`
	TagColor      string `json:"tag_color" binding:"required"`
}

// UpdateTagRequest renames and/or recolors a tag. Empty new fields keep
// the current values.
type UpdateTagRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	TagName       string `json:"tag_name" binding:"required"`
	NewTagName    string `json:"new_tag_name"`
	NewTagColor   string `json:"new_tag_color"`
}

type DeleteTagRequest struct {
	OwnerUserName string `json:"owner_user_name" binding:"required"`
	GroupName     string `json:"group_name" binding:"required"`
	TagName       string `json:"tag_name" binding:"required"`
}
