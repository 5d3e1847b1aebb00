package services

import (
	"fmt"

	"github.com/justsurfingit/jobhunt/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceAllocator issues per-user job ids. Ids are 1 + the highest id ever
// issued to the user, so deleting a job never frees its id.
type SequenceAllocator struct{}

func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{}
}

// Next must run inside the transaction that inserts the job. The counter
// update locks the user's sequence row until that transaction ends, which
// serializes concurrent allocations for the same user only.
func (a *SequenceAllocator) Next(tx *gorm.DB, userID uint) (uint, error) {
	seed := models.JobSequence{UserID: userID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("seed job sequence for user %d: %w", userID, err)
	}

	res := tx.Model(&models.JobSequence{}).
		Where("user_id = ?", userID).
		UpdateColumn("last_id", gorm.Expr("last_id + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("advance job sequence for user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("job sequence for user %d vanished", userID)
	}

	var next uint
	if err := tx.Raw("SELECT last_id FROM job_sequences WHERE user_id = ?", userID).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("read job sequence for user %d: %w", userID, err)
	}

	// Jobs written without going through the sequence (imports, a lost
	// counter row) would otherwise collide on every attempt.
	var maxID uint
	if err := tx.Raw("SELECT COALESCE(MAX(job_id), 0) FROM jobs WHERE user_id = ?", userID).Scan(&maxID).Error; err != nil {
		return 0, fmt.Errorf("read highest job id for user %d: %w", userID, err)
	}
	if next <= maxID {
		next = maxID + 1
		if err := tx.Model(&models.JobSequence{}).
			Where("user_id = ?", userID).
			UpdateColumn("last_id", next).Error; err != nil {
			return 0, fmt.Errorf("heal job sequence for user %d: %w", userID, err)
		}
	}
	return next, nil
}
