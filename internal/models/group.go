package models

type Group struct {
	GroupID     uint64 `gorm:"primarykey" json:"group_id"`
	GroupName   string `gorm:"type:varchar(255);not null" json:"group_name"`
	OwnerUserID uint64 `gorm:"not null" json:"owner_user_id"`

	// Relations
	Owner    User          `gorm:"foreignKey:OwnerUserID;references:UserID" json:"owner,omitempty"`
	Members  []GroupMember `gorm:"foreignKey:GroupID;references:GroupID" json:"members,omitempty"`
	Projects []Project     `gorm:"foreignKey:GroupID;references:GroupID" json:"projects,omitempty"`
	Tags     []Tag         `gorm:"foreignKey:GroupID;references:GroupID" json:"tags,omitempty"`
}
