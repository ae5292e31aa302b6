package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	activityModel "attendku_backend/internals/features/school/activities/model"
	attModel "attendku_backend/internals/features/school/attendance/model"
	leaveModel "attendku_backend/internals/features/school/leaves/model"
	resultModel "attendku_backend/internals/features/school/results/model"
	subjectModel "attendku_backend/internals/features/school/subjects/model"
	authModel "attendku_backend/internals/features/users/auth/model"
	userModel "attendku_backend/internals/features/users/user/model"

	"github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Models: semua tabel aplikasi, urut dari yang tidak punya dependensi.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&userModel.StudentModel{},
		&userModel.TeacherModel{},
		&authModel.TokenBlacklist{},
		&authModel.RefreshToken{},
		&subjectModel.SubjectModel{},
		&attModel.AttendanceSessionModel{},
		&attModel.AttendanceMarkModel{},
		&resultModel.ResultModel{},
		&resultModel.ResultUploadModel{},
		&leaveModel.LeaveApplicationModel{},
		&activityModel.ActivityModel{},
		&activityModel.ActivityParticipantModel{},
	}
}

// Migrate: Postgres pakai file SQL versioned (golang-migrate), SQLite pakai AutoMigrate.
func Migrate(db *gorm.DB, driver, dsn string) error {
	if driver == DriverPostgres {
		return migratePostgresSQL(dsn)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Println("[INFO] AutoMigrate selesai")
	return nil
}

func migratePostgresSQL(dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migrate conn: %w", err)
	}
	defer sqlDB.Close()

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	drv, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	v, dirty, _ := m.Version()
	log.Printf("[INFO] Migrasi postgres versi=%d dirty=%v", v, dirty)
	return nil
}
