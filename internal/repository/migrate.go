package repository

import "gorm.io/gorm"

// Models lists every persisted model, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&userModel{},
		&propertyModel{},
		&bookingModel{},
		&notificationModel{},
		&contactMessageModel{},
	}
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
