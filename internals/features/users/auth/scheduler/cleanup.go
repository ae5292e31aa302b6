package scheduler

import (
	"context"
	"log"
	"time"

	authRepo "attendku_backend/internals/features/users/auth/repository"

	"gorm.io/gorm"
)

const cleanupBatch = 100

// StartBlacklistCleanupScheduler menghapus baris token_blacklist yang expired
// lebih dari ttlDays hari, tiap 24 jam sampai ctx dibatalkan.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, ttlDays int) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			RunBlacklistCleanup(ctx, db, time.Now().UTC(), ttlDays)
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] scheduler berhenti")
				return
			case <-ticker.C:
			}
		}
	}()
}

// RunBlacklistCleanup satu putaran pembersihan; batch sampai habis.
func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, now time.Time, ttlDays int) int64 {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
	before := now.Add(-time.Duration(ttlDays) * 24 * time.Hour)

	var total int64
	for {
		n, err := authRepo.CleanupExpiredBlacklist(ctx, db, before, cleanupBatch)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", total)
	} else {
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return total
}
