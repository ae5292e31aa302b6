// Package dbtest menyediakan database SQLite in-memory untuk test integrasi.
package dbtest

import (
	"fmt"
	"testing"

	database "attendku_backend/internals/databases"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewSQLite membuka SQLite in-memory (shared cache, satu koneksi) yang sudah
// dimigrasi. Setiap test dapat database terpisah; ditutup via t.Cleanup.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.TunePool(db)
	if err := database.Migrate(db, database.DriverSQLite, dsn); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}
