package models

type Tag struct {
	TagID    uint64 `gorm:"primarykey" json:"tag_id"`
	GroupID  uint64 `gorm:"not null" json:"group_id"`
	TagName  string `gorm:"type:varchar(255);not null" json:"tag_name"`
	TagColor string `gorm:"type:varchar(50);not null" json:"tag_color"`

	// Relations
	Group Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}
