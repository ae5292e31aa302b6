package seeds

import (
	"log"

	"attendku_backend/internals/seeds/subjects"
	"attendku_backend/internals/seeds/users"

	"gorm.io/gorm"
)

// RunAllSeeds: idempotent, aman dijalankan di setiap start (SEED_DEFAULTS=true).
func RunAllSeeds(db *gorm.DB) error {
	//* User & profil
	if err := users.SeedUsersFromJSON(db, users.DefaultUsersJSON); err != nil {
		return err
	}

	//* Subject contoh
	if err := subjects.SeedSubjectsFromJSON(db, subjects.DefaultSubjectsJSON); err != nil {
		return err
	}

	log.Println("[SEED] selesai")
	return nil
}
