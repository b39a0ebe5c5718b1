package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type OccupancyRuleInput struct {
	RoomTypeID       *uint           `json:"roomTypeID"`
	ThresholdPercent int             `json:"thresholdPercent" validate:"min=0,max=100"`
	ModifierType     string          `json:"modifierType" validate:"required"`
	ModifierValue    decimal.Decimal `json:"modifierValue" validate:"required"`
	Priority         int             `json:"priority"`
	Status           string          `json:"status"`
}

func GetOccupancyRules(ctx iris.Context) {
	var rules []models.OccupancyRule
	query := storage.DB.Order("threshold_percent ASC, priority ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&rules).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": rules, "count": len(rules)})
}

func CreateOccupancyRule(ctx iris.Context) {
	var input OccupancyRuleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validateModifier(input.ModifierType, input.ModifierValue); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}
	if msg := checkOptionalRoomType(input.RoomTypeID); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	rule := models.OccupancyRule{
		RoomTypeID:       input.RoomTypeID,
		ThresholdPercent: input.ThresholdPercent,
		ModifierType:     input.ModifierType,
		ModifierValue:    input.ModifierValue,
		Priority:         input.Priority,
		Status:           statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&rule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "occupancy_rule", rule.ID, nil, rule)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": rule})
}

func UpdateOccupancyRule(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid rule ID"})
		return
	}

	var rule models.OccupancyRule
	if err := storage.DB.First(&rule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := rule

	var input OccupancyRuleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validateModifier(input.ModifierType, input.ModifierValue); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}
	if msg := checkOptionalRoomType(input.RoomTypeID); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	rule.RoomTypeID = input.RoomTypeID
	rule.ThresholdPercent = input.ThresholdPercent
	rule.ModifierType = input.ModifierType
	rule.ModifierValue = input.ModifierValue
	rule.Priority = input.Priority
	if input.Status != "" {
		rule.Status = input.Status
	}
	if err := storage.DB.Save(&rule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "occupancy_rule", rule.ID, before, rule)
	ctx.JSON(iris.Map{"success": true, "data": rule})
}

func DeleteOccupancyRule(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid rule ID"})
		return
	}

	var rule models.OccupancyRule
	if err := storage.DB.First(&rule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&rule)
	utils.Audit(ctx, "delete", "occupancy_rule", rule.ID, rule, nil)
	ctx.JSON(iris.Map{"success": true})
}
