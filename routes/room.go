package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type RoomInput struct {
	Number     string `json:"number" validate:"required,max=20"`
	RoomTypeID uint   `json:"roomTypeID" validate:"required"`
	Floor      int    `json:"floor"`
	Status     string `json:"status"`
}

type HousekeepingInput struct {
	HousekeepingStatus string `json:"housekeepingStatus" validate:"required"`
}

func GetRooms(ctx iris.Context) {
	var rooms []models.Room
	query := storage.DB.Preload("RoomType").Order("number ASC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if roomTypeID := ctx.URLParam("roomTypeID"); roomTypeID != "" {
		query = query.Where("room_type_id = ?", roomTypeID)
	}
	if err := query.Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": rooms, "count": len(rooms)})
}

func CreateRoom(ctx iris.Context) {
	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, input.RoomTypeID).Error; err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Room type does not exist"})
		return
	}

	roomStatus := input.Status
	if roomStatus == "" {
		roomStatus = "available"
	}

	room := models.Room{
		Number:             input.Number,
		RoomTypeID:         input.RoomTypeID,
		Floor:              input.Floor,
		Status:             roomStatus,
		HousekeepingStatus: models.HousekeepingDirty,
	}
	if err := storage.DB.Create(&room).Error; err != nil {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Room number already exists"})
		return
	}

	utils.Audit(ctx, "create", "room", room.ID, nil, room)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": room})
}

func UpdateRoom(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room ID"})
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := room

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room.Number = input.Number
	room.RoomTypeID = input.RoomTypeID
	room.Floor = input.Floor
	if input.Status != "" {
		room.Status = input.Status
	}
	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "room", room.ID, before, room)
	ctx.JSON(iris.Map{"success": true, "data": room})
}

func SetRoomHousekeepingStatus(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room ID"})
		return
	}

	var input HousekeepingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !models.ValidHousekeepingStatus(input.HousekeepingStatus) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid housekeeping status"})
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := room.HousekeepingStatus

	room.HousekeepingStatus = input.HousekeepingStatus
	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "housekeeping", "room", room.ID, before, room.HousekeepingStatus)
	ctx.JSON(iris.Map{"success": true, "data": room})
}

func DeleteRoom(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room ID"})
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&room)
	utils.Audit(ctx, "delete", "room", room.ID, room, nil)
	ctx.JSON(iris.Map{"success": true})
}
