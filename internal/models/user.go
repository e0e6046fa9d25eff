package models

type User struct {
	UserID       uint64 `gorm:"primarykey" json:"user_id"`
	UserName     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"user_name"`
	UserEmail    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"user_email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Relations
	OwnedGroups []Group       `gorm:"foreignKey:OwnerUserID;references:UserID" json:"-"`
	Memberships []GroupMember `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Tasks       []Task        `gorm:"foreignKey:WorkerUserID;references:UserID" json:"-"`
}
