package routes

import (
	"errors"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/services"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type CurrencyInput struct {
	Code          string          `json:"code" validate:"required,len=3"`
	Name          string          `json:"name" validate:"required,max=50"`
	Symbol        string          `json:"symbol" validate:"max=10"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate" validate:"required"`
	DecimalPlaces int32           `json:"decimalPlaces" validate:"min=0,max=4"`
	IsActive      *bool           `json:"isActive"`
}

type ExchangeRateInput struct {
	Rate   decimal.Decimal `json:"rate" validate:"required"`
	Source string          `json:"source"`
}

type ConvertInput struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	From   string          `json:"from" validate:"required,len=3"`
	To     string          `json:"to" validate:"required,len=3"`
}

func GetCurrencies(ctx iris.Context) {
	var currencies []models.Currency
	if err := storage.DB.Order("code ASC").Find(&currencies).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": currencies, "count": len(currencies)})
}

func CreateCurrency(ctx iris.Context) {
	var input CurrencyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.ExchangeRate.IsPositive() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Exchange rate must be positive"})
		return
	}

	currency := models.Currency{
		Code:          strings.ToUpper(input.Code),
		Name:          input.Name,
		Symbol:        input.Symbol,
		ExchangeRate:  input.ExchangeRate,
		DecimalPlaces: input.DecimalPlaces,
		IsActive:      true,
	}
	if input.IsActive != nil {
		currency.IsActive = *input.IsActive
	}
	if err := storage.DB.Create(&currency).Error; err != nil {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Currency code already exists"})
		return
	}

	utils.Audit(ctx, "create", "currency", currency.ID, nil, currency)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": currency})
}

func SetExchangeRate(ctx iris.Context) {
	code := strings.ToUpper(ctx.Params().Get("code"))

	var input ExchangeRateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	source := input.Source
	if source == "" {
		source = "manual"
	}

	cs := services.NewCurrencyService(storage.DB)
	if err := cs.SetExchangeRate(code, input.Rate, source); err != nil {
		if errors.Is(err, services.ErrCurrencyNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": err.Error()})
		return
	}

	var currency models.Currency
	storage.DB.Where("code = ?", code).First(&currency)
	utils.Audit(ctx, "set_rate", "currency", currency.ID, nil, currency)
	ctx.JSON(iris.Map{"success": true, "data": currency})
}

func GetExchangeRateHistory(ctx iris.Context) {
	code := strings.ToUpper(ctx.Params().Get("code"))
	page, perPage := utils.PageParams(ctx)

	query := storage.DB.Model(&models.ExchangeRateHistory{}).Where("currency_code = ?", code)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var history []models.ExchangeRateHistory
	if err := query.Order("effective_date DESC, id DESC").
		Offset((page - 1) * perPage).Limit(perPage).Find(&history).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, history, page, perPage, total)
}

func SetDefaultCurrency(ctx iris.Context) {
	code := strings.ToUpper(ctx.Params().Get("code"))

	cs := services.NewCurrencyService(storage.DB)
	if err := cs.SetDefault(code); err != nil {
		if errors.Is(err, services.ErrCurrencyNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": err.Error()})
		return
	}

	utils.Audit(ctx, "set_default", "currency", 0, nil, code)
	ctx.JSON(iris.Map{"success": true, "default": code})
}

func ConvertAmount(ctx iris.Context) {
	var input ConvertInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	cs := services.NewCurrencyService(storage.DB)
	converted, err := cs.Convert(input.Amount, input.From, input.To)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": err.Error()})
		return
	}

	ctx.JSON(iris.Map{
		"success":   true,
		"amount":    input.Amount,
		"from":      strings.ToUpper(input.From),
		"to":        strings.ToUpper(input.To),
		"converted": converted,
	})
}
