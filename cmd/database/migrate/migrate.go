package migration

import (
	"fmt"

	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"gorm.io/gorm"
)

// Migrate creates or updates every table. Parents are listed before the
// rows that reference them.
func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"crisis post", &entities.CrisisPost{}},
		{"post section", &entities.PostSection{}},
		{"volunteer application", &entities.VolunteerApplication{}},
		{"money donation", &entities.DonationMoney{}},
		{"goods donation", &entities.DonationGoods{}},
		{"crisis update", &entities.CrisisUpdate{}},
		{"comment", &entities.Comment{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}
	return nil
}
