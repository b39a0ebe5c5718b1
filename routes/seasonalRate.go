package routes

import (
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type SeasonalRateInput struct {
	RoomTypeID    uint            `json:"roomTypeID" validate:"required"`
	Name          string          `json:"name" validate:"required,max=100"`
	StartDate     string          `json:"startDate" validate:"required"`
	EndDate       string          `json:"endDate" validate:"required"`
	ModifierType  string          `json:"modifierType" validate:"required"`
	ModifierValue decimal.Decimal `json:"modifierValue" validate:"required"`
	Priority      int             `json:"priority"`
	MinStay       int             `json:"minStay" validate:"min=0"`
	Status        string          `json:"status"`
}

func GetSeasonalRates(ctx iris.Context) {
	var rates []models.SeasonalRate
	query := storage.DB.Order("start_date ASC, priority ASC")
	if roomTypeID := ctx.URLParam("roomTypeID"); roomTypeID != "" {
		query = query.Where("room_type_id = ?", roomTypeID)
	}
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&rates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": rates, "count": len(rates)})
}

func CreateSeasonalRate(ctx iris.Context) {
	var input SeasonalRateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validateModifier(input.ModifierType, input.ModifierValue); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}
	startDate, endDate, msg := parseDateRange(input.StartDate, input.EndDate)
	if msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, input.RoomTypeID).Error; err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Room type does not exist"})
		return
	}

	rate := models.SeasonalRate{
		RoomTypeID:    input.RoomTypeID,
		Name:          input.Name,
		StartDate:     startDate,
		EndDate:       endDate,
		ModifierType:  input.ModifierType,
		ModifierValue: input.ModifierValue,
		Priority:      input.Priority,
		MinStay:       input.MinStay,
		Status:        statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&rate).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "seasonal_rate", rate.ID, nil, rate)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": rate})
}

func UpdateSeasonalRate(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid seasonal rate ID"})
		return
	}

	var rate models.SeasonalRate
	if err := storage.DB.First(&rate, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := rate

	var input SeasonalRateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if msg := validateModifier(input.ModifierType, input.ModifierValue); msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}
	startDate, endDate, msg := parseDateRange(input.StartDate, input.EndDate)
	if msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	rate.RoomTypeID = input.RoomTypeID
	rate.Name = input.Name
	rate.StartDate = startDate
	rate.EndDate = endDate
	rate.ModifierType = input.ModifierType
	rate.ModifierValue = input.ModifierValue
	rate.Priority = input.Priority
	rate.MinStay = input.MinStay
	if input.Status != "" {
		rate.Status = input.Status
	}
	if err := storage.DB.Save(&rate).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "seasonal_rate", rate.ID, before, rate)
	ctx.JSON(iris.Map{"success": true, "data": rate})
}

func DeleteSeasonalRate(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid seasonal rate ID"})
		return
	}

	var rate models.SeasonalRate
	if err := storage.DB.First(&rate, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&rate)
	utils.Audit(ctx, "delete", "seasonal_rate", rate.ID, rate, nil)
	ctx.JSON(iris.Map{"success": true})
}

// parseDateRange parses inclusive YYYY-MM-DD bounds and rejects inverted
// ranges at the door, so malformed windows never reach the resolver.
func parseDateRange(start, end string) (time.Time, time.Time, string) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, "Start date must be YYYY-MM-DD"
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, "End date must be YYYY-MM-DD"
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, "Start date must not be after end date"
	}
	return startDate, endDate, ""
}
