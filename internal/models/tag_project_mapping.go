package models

// TagProjectMapping is the many-to-many association between tags and
// projects. A project that has any tags must keep at least one; the
// deletion guard lives in the tag repository.
type TagProjectMapping struct {
	TagID     uint64 `gorm:"primarykey" json:"tag_id"`
	ProjectID uint64 `gorm:"primarykey" json:"project_id"`

	// Relations
	Tag     Tag     `gorm:"foreignKey:TagID;references:TagID" json:"tag,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
}
