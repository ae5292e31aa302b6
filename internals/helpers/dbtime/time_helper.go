// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Ekspresi "sekarang" selalu diambil dari clock DB, bukan clock aplikasi.
// Postgres: now(). SQLite: julianday('now') supaya perbandingan tetap benar
// walau kolom disimpan sebagai teks dengan offset zona.

func isSQLite(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == "sqlite"
}

// NowSQL: ekspresi SQL untuk "sekarang" di clock DB.
func NowSQL(db *gorm.DB) string {
	if isSQLite(db) {
		return "'now'"
	}
	return "now()"
}

// NotPassed: kondisi "col >= now" (inklusif) sesuai dialect.
func NotPassed(db *gorm.DB, column string) string {
	return NotPassedAt(db, column, NowSQL(db))
}

// NotPassedAt sama dengan NotPassed tapi "now" berupa ekspresi SQL yang diberikan.
func NotPassedAt(db *gorm.DB, column, nowExpr string) string {
	if isSQLite(db) {
		return fmt.Sprintf("julianday(%s) >= julianday(%s)", column, nowExpr)
	}
	return fmt.Sprintf("%s >= %s", column, nowExpr)
}

// WithinLastDays: kondisi "col >= now - N hari".
func WithinLastDays(db *gorm.DB, column string, days int) string {
	if isSQLite(db) {
		return fmt.Sprintf("julianday(%s) >= julianday('now', '-%d days')", column, days)
	}
	return fmt.Sprintf("%s >= now() - interval '%d days'", column, days)
}

// CurrentTime membaca clock DB (SELECT now()).
func CurrentTime(db *gorm.DB) (time.Time, error) {
	if isSQLite(db) {
		var s string
		if err := db.Raw("SELECT strftime('%Y-%m-%d %H:%M:%f', 'now')").Scan(&s).Error; err != nil {
			return time.Time{}, err
		}
		return time.ParseInLocation("2006-01-02 15:04:05.000", s, time.UTC)
	}
	var t time.Time
	if err := db.Raw("SELECT now()").Scan(&t).Error; err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// SchoolLocation: zona waktu untuk tampilan (CSV, sertifikat).
// SCHOOL_TIMEZONE → Asia/Kolkata → UTC.
func SchoolLocation() *time.Location {
	if s := strings.TrimSpace(os.Getenv("SCHOOL_TIMEZONE")); s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.UTC
}

// ToSchoolTime mengonversi waktu DB (UTC) ke timezone sekolah. Zero value dikembalikan apa adanya.
func ToSchoolTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(SchoolLocation())
}

// FormatSchool: "2006-01-02 15:04:05" di timezone sekolah.
func FormatSchool(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return ToSchoolTime(t).Format("2006-01-02 15:04:05")
}
