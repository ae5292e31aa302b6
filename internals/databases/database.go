package database

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"attendku_backend/internals/configs"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ResolveDSN memilih driver dari DATABASE_URL:
//   - postgres:// atau postgresql://   → PostgreSQL
//   - sqlite://path, file:..., *.db     → SQLite
//   - kosong: DB_HOST terisi → PostgreSQL dari DB_*, selain itu SQLite lokal (SQLITE_PATH)
func ResolveDSN(cfg *configs.AppConfig) (driver, dsn string) {
	raw := strings.TrimSpace(cfg.DatabaseURL)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DriverPostgres, raw
	case strings.HasPrefix(raw, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(raw, "sqlite://")
	case raw != "":
		return DriverSQLite, raw
	}

	if strings.TrimSpace(cfg.DBHost) == "" {
		return DriverSQLite, cfg.SQLitePath
	}

	// statement_timeout 3s, selaras dengan timeout request
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   cfg.DBHost + ":" + cfg.DBPort,
		Path:   "/" + cfg.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", cfg.DBSSLMode)
	q.Set("application_name", "attendku")
	q.Set("options", "-c statement_timeout=3000")
	u.RawQuery = q.Encode()
	return DriverPostgres, u.String()
}

// ConnectDB membuka pool GORM sesuai driver.
func ConnectDB(cfg *configs.AppConfig) (*gorm.DB, error) {
	driver, dsn := ResolveDSN(cfg)
	log.Printf("[INFO] Koneksi database driver=%s", driver)
	return Open(driver, dsn)
}

func Open(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // aman untuk PgBouncer (transaction pooling)
		}), gcfg)
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(sqliteDSN(dsn)), gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}

// sqliteDSN menambah foreign_keys + busy_timeout kalau belum ada.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[ERROR] pool tune: %v", err)
		return
	}
	if db.Dialector.Name() == DriverSQLite {
		// SQLite: satu writer; hindari "database is locked"
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries: ping di background supaya pool sudah terisi saat request pertama.
func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			log.Printf("[ERROR] warm-up ping: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
