package routes

import (
	"errors"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/services"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type OpenFolioInput struct {
	GuestName    string `json:"guestName" validate:"required,max=100"`
	RoomID       *uint  `json:"roomID"`
	CurrencyCode string `json:"currencyCode"`
}

type PostChargeInput struct {
	Description string          `json:"description" validate:"required,max=255"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        string          `json:"date"`
}

type PaymentInput struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func GetFolios(ctx iris.Context) {
	page, perPage := utils.PageParams(ctx)

	query := storage.DB.Model(&models.Folio{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var folios []models.Folio
	if err := query.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&folios).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, folios, page, perPage, total)
}

func GetFolio(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid folio ID"})
		return
	}

	var folio models.Folio
	if err := storage.DB.Preload("LineItems").Preload("Room").First(&folio, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": folio, "balance": folio.Balance()})
}

func OpenFolio(ctx iris.Context) {
	var input OpenFolioInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	fs := services.NewFolioService(storage.DB)
	folio, err := fs.Open(input.GuestName, input.RoomID, input.CurrencyCode)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": err.Error()})
		return
	}

	utils.Audit(ctx, "open", "folio", folio.ID, nil, folio)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": folio})
}

func PostFolioCharge(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid folio ID"})
		return
	}

	var input PostChargeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !models.ValidLineCategory(input.Category) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Category must be room_charge, extra, service or discount"})
		return
	}

	date := time.Now().UTC()
	if input.Date != "" {
		date, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{"message": "Date must be YYYY-MM-DD"})
			return
		}
	}

	fs := services.NewFolioService(storage.DB)
	line, err := fs.PostCharge(uint(id), input.Description, input.Category, input.Amount, date)
	if err != nil {
		writeFolioError(ctx, err)
		return
	}

	utils.Audit(ctx, "post_charge", "folio", uint(id), nil, line)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": line})
}

func RecordFolioPayment(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid folio ID"})
		return
	}

	var input PaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.Amount.IsPositive() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Payment amount must be positive"})
		return
	}

	fs := services.NewFolioService(storage.DB)
	if err := fs.RecordPayment(uint(id), input.Amount); err != nil {
		writeFolioError(ctx, err)
		return
	}

	utils.Audit(ctx, "payment", "folio", uint(id), nil, input.Amount)
	ctx.JSON(iris.Map{"success": true})
}

func CloseFolio(ctx iris.Context) {
	settleFolio(ctx, models.FolioClosed)
}

func VoidFolio(ctx iris.Context) {
	settleFolio(ctx, models.FolioVoid)
}

func settleFolio(ctx iris.Context, status string) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid folio ID"})
		return
	}

	fs := services.NewFolioService(storage.DB)
	if status == models.FolioVoid {
		err = fs.Void(uint(id))
	} else {
		err = fs.Close(uint(id))
	}
	if err != nil {
		writeFolioError(ctx, err)
		return
	}

	utils.Audit(ctx, status, "folio", uint(id), models.FolioOpen, status)
	ctx.JSON(iris.Map{"success": true, "status": status})
}

func writeFolioError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFolioNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrFolioNotOpen):
		utils.JSONError(ctx, iris.StatusConflict, "FOLIO_NOT_OPEN", "Folio is not open")
	default:
		utils.JSONError(ctx, iris.StatusBadRequest, "FOLIO_ERROR", err.Error())
	}
}
