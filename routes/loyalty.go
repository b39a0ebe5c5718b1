package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/services"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type LoyaltyTierInput struct {
	Name      string          `json:"name" validate:"required,max=50"`
	MinPoints int             `json:"minPoints" validate:"min=0"`
	EarnRate  decimal.Decimal `json:"earnRate" validate:"required"`
	Status    string          `json:"status"`
}

type LoyaltyRewardInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description"`
	PointsCost  int             `json:"pointsCost" validate:"min=1"`
	RewardType  string          `json:"rewardType" validate:"required,oneof=discount free_night amenity"`
	RewardValue decimal.Decimal `json:"rewardValue"`
	Status      string          `json:"status"`
}

type LoyaltyMemberInput struct {
	GuestName string `json:"guestName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	TierID    *uint  `json:"tierID"`
}

type EarnPointsInput struct {
	AmountSpent decimal.Decimal `json:"amountSpent" validate:"required"`
	Reference   string          `json:"reference"`
}

type RedeemRewardInput struct {
	RewardID uint `json:"rewardID" validate:"required"`
}

type AdjustPointsInput struct {
	Points int    `json:"points" validate:"required"`
	Note   string `json:"note" validate:"required"`
}

func GetLoyaltyTiers(ctx iris.Context) {
	var tiers []models.LoyaltyTier
	if err := storage.DB.Order("min_points ASC").Find(&tiers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": tiers, "count": len(tiers)})
}

func CreateLoyaltyTier(ctx iris.Context) {
	var input LoyaltyTierInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.EarnRate.IsPositive() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Earn rate must be positive"})
		return
	}

	tier := models.LoyaltyTier{
		Name:      input.Name,
		MinPoints: input.MinPoints,
		EarnRate:  input.EarnRate,
		Status:    statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&tier).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "loyalty_tier", tier.ID, nil, tier)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": tier})
}

func GetLoyaltyRewards(ctx iris.Context) {
	var rewards []models.LoyaltyReward
	query := storage.DB.Order("points_cost ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&rewards).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": rewards, "count": len(rewards)})
}

func CreateLoyaltyReward(ctx iris.Context) {
	var input LoyaltyRewardInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reward := models.LoyaltyReward{
		Name:        input.Name,
		Description: input.Description,
		PointsCost:  input.PointsCost,
		RewardType:  input.RewardType,
		RewardValue: input.RewardValue,
		Status:      statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&reward).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "loyalty_reward", reward.ID, nil, reward)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": reward})
}

func GetLoyaltyMembers(ctx iris.Context) {
	var members []models.LoyaltyMember
	if err := storage.DB.Preload("Tier").Order("id ASC").Find(&members).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": members, "count": len(members)})
}

func GetLoyaltyMember(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid member ID"})
		return
	}

	var member models.LoyaltyMember
	if err := storage.DB.Preload("Tier").First(&member, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": member})
}

func CreateLoyaltyMember(ctx iris.Context) {
	var input LoyaltyMemberInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	member := models.LoyaltyMember{
		GuestName: input.GuestName,
		Email:     strings.ToLower(input.Email),
		TierID:    input.TierID,
	}
	if err := storage.DB.Create(&member).Error; err != nil {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "A member with this email already exists"})
		return
	}

	utils.Audit(ctx, "create", "loyalty_member", member.ID, nil, member)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": member})
}

func EarnLoyaltyPoints(ctx iris.Context) {
	memberID, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid member ID"})
		return
	}

	var input EarnPointsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.AmountSpent.IsPositive() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Amount spent must be positive"})
		return
	}

	ls := services.NewLoyaltyService(storage.DB)
	txn, err := ls.EarnPoints(uint(memberID), input.AmountSpent, input.Reference)
	if err != nil {
		writeLoyaltyError(ctx, err)
		return
	}

	utils.Audit(ctx, "earn", "loyalty_member", uint(memberID), nil, txn)
	ctx.JSON(iris.Map{"success": true, "data": txn})
}

func RedeemLoyaltyReward(ctx iris.Context) {
	memberID, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid member ID"})
		return
	}

	var input RedeemRewardInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	ls := services.NewLoyaltyService(storage.DB)
	txn, err := ls.RedeemReward(uint(memberID), input.RewardID)
	if err != nil {
		writeLoyaltyError(ctx, err)
		return
	}

	utils.Audit(ctx, "redeem", "loyalty_member", uint(memberID), nil, txn)
	ctx.JSON(iris.Map{"success": true, "data": txn})
}

func AdjustLoyaltyPoints(ctx iris.Context) {
	memberID, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid member ID"})
		return
	}

	var input AdjustPointsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	ls := services.NewLoyaltyService(storage.DB)
	txn, err := ls.AdjustPoints(uint(memberID), input.Points, input.Note)
	if err != nil {
		writeLoyaltyError(ctx, err)
		return
	}

	utils.Audit(ctx, "adjust", "loyalty_member", uint(memberID), nil, txn)
	ctx.JSON(iris.Map{"success": true, "data": txn})
}

func GetLoyaltyTransactions(ctx iris.Context) {
	memberID, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid member ID"})
		return
	}
	limit := ctx.URLParamIntDefault("limit", 50)

	ls := services.NewLoyaltyService(storage.DB)
	txns, err := ls.Transactions(uint(memberID), limit)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": txns, "count": len(txns)})
}

func writeLoyaltyError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrInsufficientPoints):
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "INSUFFICIENT_POINTS", "Insufficient points balance")
	case errors.Is(err, services.ErrRewardInactive):
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "REWARD_INACTIVE", "Reward is not available")
	default:
		utils.CreateInternalServerError(ctx)
	}
}
