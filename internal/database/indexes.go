package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// createIndexes adds the secondary indexes the hot lookup paths rely on.
// AutoMigrate covers primary keys and declared unique indexes; everything
// here backs a compound lookup or a cascade scan.
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
		unique  bool
	}{
		// Group resolution is always (group_name, owner_user_id).
		{"groups", "idx_groups_owner_name", "owner_user_id, group_name", false},

		// Project lookups go through (group_id, project_name); every
		// compound lookup assumes the pair is unique within a group.
		{"projects", "idx_projects_group_name", "group_id, project_name", true},

		// Tag resolution by name within a group.
		{"tags", "idx_tags_group_name", "group_id, tag_name", false},

		// Cascade scans and membership checks.
		{"group_members", "idx_group_members_user_id", "user_id", false},
		{"tag_project_mappings", "idx_tpm_project_id", "project_id", false},
		{"tasks", "idx_tasks_project_id", "project_id", false},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		unique := ""
		if idx.unique {
			unique = "UNIQUE "
		}
		sql := fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)", unique, idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
