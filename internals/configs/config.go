package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// AppConfig dibaca sekali saat start, lalu diteruskan eksplisit ke komponen yang butuh.
type AppConfig struct {
	Port string `env:"PORT" envDefault:"3000"`

	// DATABASE_URL menentukan driver: postgres://... atau sqlite://path / path file.
	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBHost      string `env:"DB_HOST"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"require"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"attendance.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	SeedDefault bool   `env:"SEED_DEFAULTS" envDefault:"false"`

	JWTSecret        string `env:"JWT_SECRET"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET"`
	GoogleClientID   string `env:"GOOGLE_CLIENT_ID"`

	UploadDir            string   `env:"UPLOAD_DIR" envDefault:"uploads/leave_documents"`
	SessionDefaultTTL    int      `env:"SESSION_DEFAULT_TTL" envDefault:"300"`
	BlacklistTTLDays     int      `env:"TOKEN_BLACKLIST_TTL_DAYS" envDefault:"7"`
	CorsOrigins          []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5500"`
	RequestTimeoutSecond int      `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"5"`
}

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] .env tidak ditemukan, pakai ENV sistem")
		} else {
			log.Println("[INFO] .env berhasil dimuat")
		}
	} else {
		log.Println("[INFO] Running in Railway, pakai ENV sistem")
	}
}

// Load membaca ENV ke AppConfig dan mengisi secret global yang dipakai middleware auth.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	JWTSecret = cfg.JWTSecret
	JWTRefreshSecret = cfg.JWTRefreshSecret
	GoogleClientID = cfg.GoogleClientID

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET belum diset!")
	}
	if JWTRefreshSecret == "" {
		log.Println("[ERROR] JWT_REFRESH_SECRET belum diset!")
	}
	if GoogleClientID == "" {
		log.Println("[INFO] GOOGLE_CLIENT_ID kosong, login Google nonaktif")
	}
	return cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if os.Getenv("DB_LOG_QUERIES") == "true" {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
