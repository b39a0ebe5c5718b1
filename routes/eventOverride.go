package routes

import (
	"encoding/json"
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type EventOverrideInput struct {
	Name          string          `json:"name" validate:"required,max=100"`
	RoomTypeID    *uint           `json:"roomTypeID"`
	StartDate     string          `json:"startDate" validate:"required"`
	EndDate       string          `json:"endDate" validate:"required"`
	ModifierType  string          `json:"modifierType" validate:"required"`
	ModifierValue decimal.Decimal `json:"modifierValue" validate:"required"`
	Priority      int             `json:"priority"`
	Status        string          `json:"status"`
	Metadata      json.RawMessage `json:"metadata"`
}

func GetEventOverrides(ctx iris.Context) {
	var events []models.EventOverride
	query := storage.DB.Order("start_date ASC, priority ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&events).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": events, "count": len(events)})
}

func CreateEventOverride(ctx iris.Context) {
	var input EventOverrideInput
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
	startDate, endDate, msg := parseDateRange(input.StartDate, input.EndDate)
	if msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	event := models.EventOverride{
		Name:          input.Name,
		RoomTypeID:    input.RoomTypeID,
		StartDate:     startDate,
		EndDate:       endDate,
		ModifierType:  input.ModifierType,
		ModifierValue: input.ModifierValue,
		Priority:      input.Priority,
		Status:        statusOrActive(input.Status),
		Metadata:      datatypes.JSON(input.Metadata),
	}
	if err := storage.DB.Create(&event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "event_override", event.ID, nil, event)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": event})
}

func UpdateEventOverride(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid event ID"})
		return
	}

	var event models.EventOverride
	if err := storage.DB.First(&event, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := event

	var input EventOverrideInput
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
	startDate, endDate, msg := parseDateRange(input.StartDate, input.EndDate)
	if msg != "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": msg})
		return
	}

	event.Name = input.Name
	event.RoomTypeID = input.RoomTypeID
	event.StartDate = startDate
	event.EndDate = endDate
	event.ModifierType = input.ModifierType
	event.ModifierValue = input.ModifierValue
	event.Priority = input.Priority
	if input.Status != "" {
		event.Status = input.Status
	}
	if input.Metadata != nil {
		event.Metadata = datatypes.JSON(input.Metadata)
	}
	if err := storage.DB.Save(&event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "event_override", event.ID, before, event)
	ctx.JSON(iris.Map{"success": true, "data": event})
}

func DeleteEventOverride(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid event ID"})
		return
	}

	var event models.EventOverride
	if err := storage.DB.First(&event, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&event)
	utils.Audit(ctx, "delete", "event_override", event.ID, event, nil)
	ctx.JSON(iris.Map{"success": true})
}
