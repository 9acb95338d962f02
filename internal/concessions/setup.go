package concessions

import (
	"fmt"

	"gorm.io/gorm"
)

// Init prepares the concessions schema: the PostGIS extension, the table,
// and the spatial index backing point-containment lookups.
func Init(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS postgis`).Error; err != nil {
		return fmt.Errorf("enable postgis extension: %w", err)
	}

	if err := db.AutoMigrate(&Concession{}); err != nil {
		return fmt.Errorf("auto-migrate concessions: %w", err)
	}

	if err := db.Exec(`
        CREATE INDEX IF NOT EXISTS concessions_geometry_gist
        ON concessions USING GIST (geometry);
    `).Error; err != nil {
		return fmt.Errorf("create concessions_geometry_gist: %w", err)
	}

	return nil
}
