package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type DowRuleInput struct {
	DayOfWeek     int             `json:"dayOfWeek" validate:"min=0,max=6"`
	RoomTypeID    *uint           `json:"roomTypeID"`
	ModifierType  string          `json:"modifierType" validate:"required"`
	ModifierValue decimal.Decimal `json:"modifierValue" validate:"required"`
	Status        string          `json:"status"`
}

func GetDowRules(ctx iris.Context) {
	var rules []models.DowRule
	query := storage.DB.Order("day_of_week ASC, id ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&rules).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": rules, "count": len(rules)})
}

func CreateDowRule(ctx iris.Context) {
	var input DowRuleInput
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

	rule := models.DowRule{
		DayOfWeek:     input.DayOfWeek,
		RoomTypeID:    input.RoomTypeID,
		ModifierType:  input.ModifierType,
		ModifierValue: input.ModifierValue,
		Status:        statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&rule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "dow_rule", rule.ID, nil, rule)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": rule})
}

func UpdateDowRule(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid rule ID"})
		return
	}

	var rule models.DowRule
	if err := storage.DB.First(&rule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := rule

	var input DowRuleInput
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

	rule.DayOfWeek = input.DayOfWeek
	rule.RoomTypeID = input.RoomTypeID
	rule.ModifierType = input.ModifierType
	rule.ModifierValue = input.ModifierValue
	if input.Status != "" {
		rule.Status = input.Status
	}
	if err := storage.DB.Save(&rule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "dow_rule", rule.ID, before, rule)
	ctx.JSON(iris.Map{"success": true, "data": rule})
}

func DeleteDowRule(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid rule ID"})
		return
	}

	var rule models.DowRule
	if err := storage.DB.First(&rule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&rule)
	utils.Audit(ctx, "delete", "dow_rule", rule.ID, rule, nil)
	ctx.JSON(iris.Map{"success": true})
}

// checkOptionalRoomType verifies a nullable room type reference when one is
// supplied. Nil means the rule is property-wide.
func checkOptionalRoomType(id *uint) string {
	if id == nil {
		return ""
	}
	var roomType models.RoomType
	if err := storage.DB.First(&roomType, *id).Error; err != nil {
		return "Room type does not exist"
	}
	return ""
}
