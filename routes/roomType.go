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

type RoomTypeInput struct {
	Name         string          `json:"name" validate:"required,max=100"`
	Code         string          `json:"code" validate:"required,max=30"`
	Description  string          `json:"description"`
	BaseRate     decimal.Decimal `json:"baseRate" validate:"required"`
	MaxOccupancy int             `json:"maxOccupancy" validate:"min=1"`
	Status       string          `json:"status"`
}

func GetRoomTypes(ctx iris.Context) {
	var roomTypes []models.RoomType
	query := storage.DB.Order("code ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&roomTypes).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": roomTypes, "count": len(roomTypes)})
}

func GetRoomType(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var roomType models.RoomType
	if err := storage.DB.Preload("Rooms").First(&roomType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": roomType})
}

func CreateRoomType(ctx iris.Context) {
	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.BaseRate.IsNegative() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Base rate cannot be negative"})
		return
	}

	roomType := models.RoomType{
		Name:         input.Name,
		Code:         strings.ToUpper(input.Code),
		Description:  input.Description,
		BaseRate:     input.BaseRate,
		MaxOccupancy: input.MaxOccupancy,
		Status:       statusOrActive(input.Status),
	}
	if err := storage.DB.Create(&roomType).Error; err != nil {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Room type code already exists"})
		return
	}

	utils.Audit(ctx, "create", "room_type", roomType.ID, nil, roomType)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": roomType})
}

func UpdateRoomType(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := roomType

	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.BaseRate.IsNegative() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Base rate cannot be negative"})
		return
	}

	roomType.Name = input.Name
	roomType.Code = strings.ToUpper(input.Code)
	roomType.Description = input.Description
	roomType.BaseRate = input.BaseRate
	roomType.MaxOccupancy = input.MaxOccupancy
	if input.Status != "" {
		roomType.Status = input.Status
	}
	if err := storage.DB.Save(&roomType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "room_type", roomType.ID, before, roomType)
	ctx.JSON(iris.Map{"success": true, "data": roomType})
}

func DeleteRoomType(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var roomCount int64
	storage.DB.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&roomCount)
	if roomCount > 0 {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Room type still has rooms assigned", "rooms": roomCount})
		return
	}

	storage.DB.Delete(&roomType)
	utils.Audit(ctx, "delete", "room_type", roomType.ID, roomType, nil)
	ctx.JSON(iris.Map{"success": true})
}

func statusOrActive(status string) string {
	if status == "" {
		return "active"
	}
	return status
}
