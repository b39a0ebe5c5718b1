package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.RatePlan{},
		&models.SeasonalRate{},
		&models.DowRule{},
		&models.OccupancyRule{},
		&models.EventOverride{},
		&models.Tax{},
		&models.Currency{},
		&models.ExchangeRateHistory{},
		&models.PromoCode{},
		&models.PromoRedemption{},
		&models.LoyaltyTier{},
		&models.LoyaltyMember{},
		&models.LoyaltyReward{},
		&models.LoyaltyTransaction{},
		&models.Folio{},
		&models.FolioLineItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func seedMember(t *testing.T, db *gorm.DB, balance int) models.LoyaltyMember {
	t.Helper()
	member := models.LoyaltyMember{GuestName: "Amina Diallo", Email: "amina@example.com", PointsBalance: balance}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return member
}

func TestRedeemRewardInsufficientPoints(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLoyaltyService(db)

	member := seedMember(t, db, 500)
	reward := models.LoyaltyReward{Name: "Free Night", PointsCost: 600, RewardType: "free_night", Status: "active"}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("failed to seed reward: %v", err)
	}

	_, err := ls.RedeemReward(member.ID, reward.ID)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	// Balance untouched, no ledger entry written
	var reloaded models.LoyaltyMember
	db.First(&reloaded, member.ID)
	if reloaded.PointsBalance != 500 {
		t.Fatalf("failed redemption must not move the balance, got %d", reloaded.PointsBalance)
	}
	var count int64
	db.Model(&models.LoyaltyTransaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed redemption must not append to the ledger, found %d rows", count)
	}
}

func TestRedeemRewardDebitsAndAppends(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLoyaltyService(db)

	member := seedMember(t, db, 1000)
	reward := models.LoyaltyReward{Name: "Spa Voucher", PointsCost: 400, RewardType: "amenity", Status: "active"}
	db.Create(&reward)

	txn, err := ls.RedeemReward(member.ID, reward.ID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if txn.Points != -400 || txn.BalanceAfter != 600 {
		t.Fatalf("expected -400 points, balance_after 600; got %d / %d", txn.Points, txn.BalanceAfter)
	}
	if txn.Type != models.LoyaltyRedeem {
		t.Fatalf("expected redeem type, got %s", txn.Type)
	}
}

func TestLedgerConservation(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLoyaltyService(db)

	member := seedMember(t, db, 0)
	reward := models.LoyaltyReward{Name: "Late Checkout", PointsCost: 150, RewardType: "amenity", Status: "active"}
	db.Create(&reward)

	if _, err := ls.EarnPoints(member.ID, dec(t, "320"), "folio-1"); err != nil {
		t.Fatalf("earn failed: %v", err)
	}
	if _, err := ls.AdjustPoints(member.ID, 80, "goodwill"); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if _, err := ls.RedeemReward(member.ID, reward.ID); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if _, err := ls.AdjustPoints(member.ID, -50, "correction"); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	var txns []models.LoyaltyTransaction
	db.Where("member_id = ?", member.ID).Order("id ASC").Find(&txns)

	running := 0
	for _, txn := range txns {
		running += txn.Points
		if txn.BalanceAfter != running {
			t.Fatalf("ledger entry %d: balance_after %d, running sum %d", txn.ID, txn.BalanceAfter, running)
		}
	}

	var reloaded models.LoyaltyMember
	db.First(&reloaded, member.ID)
	if reloaded.PointsBalance != running {
		t.Fatalf("final balance %d disagrees with ledger sum %d", reloaded.PointsBalance, running)
	}
	if running != 320+80-150-50 {
		t.Fatalf("expected 200 points, got %d", running)
	}
}

func TestEarnPointsUsesTierRate(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLoyaltyService(db)

	tier := models.LoyaltyTier{Name: "Gold", MinPoints: 0, EarnRate: dec(t, "2"), Status: "active"}
	db.Create(&tier)
	member := models.LoyaltyMember{GuestName: "Omar", Email: "omar@example.com", TierID: &tier.ID}
	db.Create(&member)

	txn, err := ls.EarnPoints(member.ID, dec(t, "150.75"), "folio-9")
	if err != nil {
		t.Fatalf("earn failed: %v", err)
	}
	if txn.Points != 301 {
		t.Fatalf("expected floor(150.75*2) = 301 points, got %d", txn.Points)
	}
}

func TestRetierPromotesMember(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLoyaltyService(db)

	silver := models.LoyaltyTier{Name: "Silver", MinPoints: 0, EarnRate: dec(t, "1"), Status: "active"}
	gold := models.LoyaltyTier{Name: "Gold", MinPoints: 1000, EarnRate: dec(t, "2"), Status: "active"}
	db.Create(&silver)
	db.Create(&gold)

	member := models.LoyaltyMember{GuestName: "Leila", Email: "leila@example.com", TierID: &silver.ID}
	db.Create(&member)

	if _, err := ls.AdjustPoints(member.ID, 1200, "migration credit"); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	var reloaded models.LoyaltyMember
	db.First(&reloaded, member.ID)
	if reloaded.TierID == nil || *reloaded.TierID != gold.ID {
		t.Fatalf("crossing 1000 points should promote to Gold, tier is %v", reloaded.TierID)
	}
}
