package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

var (
	ErrInsufficientPoints = errors.New("insufficient points balance")
	ErrRewardInactive     = errors.New("reward is not active")
	ErrMemberNotFound     = errors.New("loyalty member not found")
)

// LoyaltyService owns the points ledger. Every debit is a guarded
// compare-and-debit (the UPDATE only lands while the balance covers it),
// so concurrent redemptions cannot overdraw, and every balance change
// appends exactly one immutable ledger entry whose BalanceAfter snapshots
// the running balance.
type LoyaltyService struct {
	DB *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{DB: db}
}

// EarnPoints credits points for an amount spent, using the member tier's
// earn rate (floor of amount * rate).
func (ls *LoyaltyService) EarnPoints(memberID uint, amountSpent decimal.Decimal, reference string) (*models.LoyaltyTransaction, error) {
	var txn *models.LoyaltyTransaction
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		member, err := findMember(tx, memberID)
		if err != nil {
			return err
		}

		rate := decimal.NewFromInt(1)
		if member.TierID != nil {
			var tier models.LoyaltyTier
			if err := tx.First(&tier, *member.TierID).Error; err == nil {
				rate = tier.EarnRate
			}
		}

		points := int(amountSpent.Mul(rate).IntPart())
		if points <= 0 {
			return fmt.Errorf("amount %s earns no points", amountSpent)
		}

		txn, err = appendLedger(tx, member.ID, models.LoyaltyEarn, points, reference, "")
		return err
	})
	return txn, err
}

// RedeemReward is an atomic check-and-debit. It fails with
// ErrInsufficientPoints (balance untouched) when the member cannot afford
// the reward.
func (ls *LoyaltyService) RedeemReward(memberID, rewardID uint) (*models.LoyaltyTransaction, error) {
	var txn *models.LoyaltyTransaction
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.LoyaltyReward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			return fmt.Errorf("reward %d: %w", rewardID, err)
		}
		if reward.Status != "active" {
			return ErrRewardInactive
		}

		var err error
		txn, err = appendLedger(tx, memberID, models.LoyaltyRedeem, -reward.PointsCost, uuid.NewString(), reward.Name)
		return err
	})
	return txn, err
}

// AdjustPoints applies a signed manual correction. A negative adjustment
// may not take the balance below zero.
func (ls *LoyaltyService) AdjustPoints(memberID uint, points int, note string) (*models.LoyaltyTransaction, error) {
	if points == 0 {
		return nil, fmt.Errorf("adjustment of zero points")
	}
	var txn *models.LoyaltyTransaction
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = appendLedger(tx, memberID, models.LoyaltyAdjust, points, uuid.NewString(), note)
		return err
	})
	return txn, err
}

// Transactions lists a member's ledger, newest first.
func (ls *LoyaltyService) Transactions(memberID uint, limit int) ([]models.LoyaltyTransaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var txns []models.LoyaltyTransaction
	err := ls.DB.Where("member_id = ?", memberID).
		Order("id DESC").Limit(limit).Find(&txns).Error
	return txns, err
}

func findMember(tx *gorm.DB, memberID uint) (*models.LoyaltyMember, error) {
	var member models.LoyaltyMember
	if err := tx.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// appendLedger moves the balance with a guarded update and writes the
// ledger row inside the caller's transaction. Prior rows are never
// touched. The WHERE clause is the overdraft guard: a debit only lands
// while the balance still covers it.
func appendLedger(tx *gorm.DB, memberID uint, txnType string, points int, reference, note string) (*models.LoyaltyTransaction, error) {
	res := tx.Model(&models.LoyaltyMember{}).
		Where("id = ? AND points_balance + ? >= 0", memberID, points).
		Update("points_balance", gorm.Expr("points_balance + ?", points))
	if res.Error != nil {
		return nil, fmt.Errorf("updating balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish an unknown member from an overdraft
		if _, err := findMember(tx, memberID); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientPoints
	}

	member, err := findMember(tx, memberID)
	if err != nil {
		return nil, err
	}

	txn := models.LoyaltyTransaction{
		MemberID:     member.ID,
		Type:         txnType,
		Points:       points,
		BalanceAfter: member.PointsBalance,
		Reference:    reference,
		Note:         note,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("appending ledger entry: %w", err)
	}

	if err := retier(tx, member); err != nil {
		return nil, err
	}
	return &txn, nil
}

// retier moves the member to the highest active tier whose threshold the
// new balance clears. No tier qualifying leaves the member tierless.
func retier(tx *gorm.DB, member *models.LoyaltyMember) error {
	var tier models.LoyaltyTier
	err := tx.Where("status = ? AND min_points <= ?", "active", member.PointsBalance).
		Order("min_points DESC").First(&tier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Model(member).Update("tier_id", nil).Error
	}
	if err != nil {
		return err
	}
	if member.TierID != nil && *member.TierID == tier.ID {
		return nil
	}
	return tx.Model(member).Update("tier_id", tier.ID).Error
}
