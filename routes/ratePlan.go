package routes

import (
	"strconv"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type RatePlanInput struct {
	Code          string          `json:"code" validate:"required,max=30"`
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description"`
	ModifierType  string          `json:"modifierType" validate:"required"`
	ModifierValue decimal.Decimal `json:"modifierValue" validate:"required"`
	MinStay       int             `json:"minStay" validate:"min=0"`
	MaxStay       int             `json:"maxStay" validate:"min=0"`
	Priority      int             `json:"priority"`
	Status        string          `json:"status"`
}

func GetRatePlans(ctx iris.Context) {
	var plans []models.RatePlan
	query := storage.DB.Order("priority ASC, id ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&plans).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": plans, "count": len(plans)})
}

func CreateRatePlan(ctx iris.Context) {
	var input RatePlanInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validateModifier(input.ModifierType, input.ModifierValue); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}
	if input.MaxStay > 0 && input.MinStay > input.MaxStay {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Minimum stay cannot exceed maximum stay"})
		return
	}

	plan := models.RatePlan{
		Code:          strings.ToUpper(input.Code),
		Name:          input.Name,
		Description:   input.Description,
		ModifierType:  input.ModifierType,
		ModifierValue: input.ModifierValue,
		MinStay:       input.MinStay,
		MaxStay:       input.MaxStay,
		Priority:      input.Priority,
		Status:        statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&plan).Error; err != nil {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Rate plan code already exists"})
		return
	}

	utils.Audit(ctx, "create", "rate_plan", plan.ID, nil, plan)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": plan})
}

func UpdateRatePlan(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid rate plan ID"})
		return
	}

	var plan models.RatePlan
	if err := storage.DB.First(&plan, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := plan

	var input RatePlanInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validateModifier(input.ModifierType, input.ModifierValue); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}
	if input.MaxStay > 0 && input.MinStay > input.MaxStay {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Minimum stay cannot exceed maximum stay"})
		return
	}

	plan.Code = strings.ToUpper(input.Code)
	plan.Name = input.Name
	plan.Description = input.Description
	plan.ModifierType = input.ModifierType
	plan.ModifierValue = input.ModifierValue
	plan.MinStay = input.MinStay
	plan.MaxStay = input.MaxStay
	plan.Priority = input.Priority
	if input.Status != "" {
		plan.Status = input.Status
	}
	if err := storage.DB.Save(&plan).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "rate_plan", plan.ID, before, plan)
	ctx.JSON(iris.Map{"success": true, "data": plan})
}

func DeleteRatePlan(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid rate plan ID"})
		return
	}

	var plan models.RatePlan
	if err := storage.DB.First(&plan, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&plan)
	utils.Audit(ctx, "delete", "rate_plan", plan.ID, plan, nil)
	ctx.JSON(iris.Map{"success": true})
}

// validateModifier rejects unknown modifier types and negative absolute
// modifiers before they reach the database. Returns an empty string when
// the pair is acceptable.
func validateModifier(modifierType string, value decimal.Decimal) string {
	if !models.ValidModifierType(modifierType) {
		return "Modifier type must be percentage, fixed or absolute"
	}
	if modifierType == models.ModifierAbsolute && value.IsNegative() {
		return "Absolute modifier cannot be negative"
	}
	return ""
}
