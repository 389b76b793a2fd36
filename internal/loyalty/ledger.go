package loyalty

import (
	"context"

	"gorm.io/gorm"

	"github.com/korefit/studio-api/internal/models"
)

// PointsBookingCompleted is the fixed bonus for attending a class.
const PointsBookingCompleted = 10

// Ledger records point awards. Callers treat it as fire-and-forget:
// failures are logged, never propagated into the booking flow.
type Ledger interface {
	Award(ctx context.Context, userID uint, points int, reason string) error
}

type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Award(
	ctx context.Context,
	userID uint,
	points int,
	reason string,
) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := models.LoyaltyTransaction{
			UserID: userID,
			Points: points,
			Reason: reason,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).
			Error
	})
}

var _ Ledger = (*GormLedger)(nil)
