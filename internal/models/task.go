package models

import "time"

type Task struct {
	TaskID       uint64    `gorm:"primarykey" json:"task_id"`
	ProjectID    uint64    `gorm:"not null" json:"project_id"`
	WorkerUserID uint64    `gorm:"not null" json:"worker_user_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	StartTime    time.Time `gorm:"not null" json:"start_time"`
	EndTime      time.Time `gorm:"not null" json:"end_time"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
	Worker  User    `gorm:"foreignKey:WorkerUserID;references:UserID" json:"worker,omitempty"`
}
