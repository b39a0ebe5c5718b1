package routes

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
	"github.com/onabhani/Nozule-Suite-sub000/services"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type PromoCodeInput struct {
	Code          string           `json:"code" validate:"required,max=30"`
	Description   string           `json:"description"`
	DiscountType  string           `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal  `json:"discountValue" validate:"required"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	ValidFrom     *time.Time       `json:"validFrom"`
	ValidTo       *time.Time       `json:"validTo"`
	MaxUses       *int             `json:"maxUses"`
	PerGuestLimit *int             `json:"perGuestLimit"`
	MinNights     *int             `json:"minNights"`
	IsActive      *bool            `json:"isActive"`
}

type ApplyPromoInput struct {
	Code    string          `json:"code" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Nights  int             `json:"nights" validate:"min=1"`
	FolioID *uint           `json:"folioID"`
}

func GetPromoCodes(ctx iris.Context) {
	page, perPage := utils.PageParams(ctx)

	query := storage.DB.Model(&models.PromoCode{})
	if active := ctx.URLParam("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var promos []models.PromoCode
	if err := query.Order("code ASC").Offset((page - 1) * perPage).Limit(perPage).Find(&promos).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, promos, page, perPage, total)
}

func CreatePromoCode(ctx iris.Context) {
	var input PromoCodeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validatePromoWindow(input.ValidFrom, input.ValidTo); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	promo := models.PromoCode{
		Code:          strings.ToUpper(input.Code),
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MaxDiscount:   input.MaxDiscount,
		ValidFrom:     input.ValidFrom,
		ValidTo:       input.ValidTo,
		MaxUses:       input.MaxUses,
		PerGuestLimit: input.PerGuestLimit,
		MinNights:     input.MinNights,
		IsActive:      true,
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}
	if err := storage.DB.Create(&promo).Error; err != nil {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Promo code already exists"})
		return
	}

	utils.Audit(ctx, "create", "promo_code", promo.ID, nil, promo)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": promo})
}

func UpdatePromoCode(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid promo code ID"})
		return
	}

	var promo models.PromoCode
	if err := storage.DB.First(&promo, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := promo

	var input PromoCodeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validatePromoWindow(input.ValidFrom, input.ValidTo); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	promo.Code = strings.ToUpper(input.Code)
	promo.Description = input.Description
	promo.DiscountType = input.DiscountType
	promo.DiscountValue = input.DiscountValue
	promo.MaxDiscount = input.MaxDiscount
	promo.ValidFrom = input.ValidFrom
	promo.ValidTo = input.ValidTo
	promo.MaxUses = input.MaxUses
	promo.PerGuestLimit = input.PerGuestLimit
	promo.MinNights = input.MinNights
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}
	if err := storage.DB.Save(&promo).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "promo_code", promo.ID, before, promo)
	ctx.JSON(iris.Map{"success": true, "data": promo})
}

func DeletePromoCode(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid promo code ID"})
		return
	}

	var promo models.PromoCode
	if err := storage.DB.First(&promo, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&promo)
	utils.Audit(ctx, "delete", "promo_code", promo.ID, promo, nil)
	ctx.JSON(iris.Map{"success": true})
}

// PreviewPromoCode validates a code against an amount without consuming a use.
func PreviewPromoCode(ctx iris.Context) {
	guestID := ctx.Values().Get("userID").(uint)

	var input ApplyPromoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	ps := services.NewPromoService(storage.DB)
	final, discount, err := ps.Preview(input.Code, guestID, input.Amount, input.Nights, promoDecimalPlaces())
	if err != nil {
		writePromoError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "finalAmount": final, "discount": discount})
}

// RedeemPromoCode applies a code and records the redemption atomically.
func RedeemPromoCode(ctx iris.Context) {
	guestID := ctx.Values().Get("userID").(uint)

	var input ApplyPromoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	ps := services.NewPromoService(storage.DB)
	final, discount, err := ps.Redeem(input.Code, guestID, input.FolioID, input.Amount, input.Nights, promoDecimalPlaces())
	if err != nil {
		writePromoError(ctx, err)
		return
	}

	utils.Audit(ctx, "redeem", "promo_code", 0, nil, iris.Map{"code": strings.ToUpper(input.Code), "discount": discount})
	ctx.JSON(iris.Map{"success": true, "finalAmount": final, "discount": discount})
}

func writePromoError(ctx iris.Context, err error) {
	var promoErr *pricing.PromoError
	if errors.As(err, &promoErr) {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, promoErr.Reason, promoErr.Error())
		return
	}
	if errors.Is(err, services.ErrPromoNotFound) {
		utils.CreateNotFound(ctx)
		return
	}
	utils.CreateInternalServerError(ctx)
}

func validatePromoWindow(from, to *time.Time) string {
	if from != nil && to != nil && from.After(*to) {
		return "Valid-from must not be after valid-to"
	}
	return ""
}

// promoDecimalPlaces reads the default currency's minor-unit count, falling
// back to 2 when no default is configured yet.
func promoDecimalPlaces() int32 {
	var currency models.Currency
	if err := storage.DB.Where("is_default = ?", true).First(&currency).Error; err != nil {
		return 2
	}
	return currency.DecimalPlaces
}
