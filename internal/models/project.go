package models

type Project struct {
	ProjectID          uint64 `gorm:"primarykey" json:"project_id"`
	GroupID            uint64 `gorm:"not null" json:"group_id"`
	ProjectName        string `gorm:"type:varchar(255);not null" json:"project_name"`
	ProjectDescription string `gorm:"type:text" json:"project_description"`

	// Relations
	Group Group  `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID;references:ProjectID" json:"tasks,omitempty"`
}
