package models

// GroupMember links a user to a group. The owner's row is inserted at
// group creation with Writeable set; additional workers default to
// read-only.
type GroupMember struct {
	GroupID   uint64 `gorm:"primarykey" json:"group_id"`
	UserID    uint64 `gorm:"primarykey" json:"user_id"`
	Writeable bool   `gorm:"not null;default:false" json:"writeable"`

	// Relations
	Group Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
	User  User  `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}
