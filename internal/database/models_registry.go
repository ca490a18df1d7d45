package database

import "storyhub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models
// in dependency order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Story{},
		&models.Comment{},
		&models.Like{},
	}
}
