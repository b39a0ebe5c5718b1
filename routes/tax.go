package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

type TaxInput struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Rate      decimal.Decimal `json:"rate" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=percentage fixed"`
	AppliesTo string          `json:"appliesTo" validate:"required"`
	IsActive  *bool           `json:"isActive"`
	SortOrder int             `json:"sortOrder"`
}

func GetTaxes(ctx iris.Context) {
	var taxes []models.Tax
	query := storage.DB.Order("sort_order ASC, id ASC")
	if active := ctx.URLParam("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if err := query.Find(&taxes).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": taxes, "count": len(taxes)})
}

func CreateTax(ctx iris.Context) {
	var input TaxInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !models.ValidTaxAppliesTo(input.AppliesTo) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Tax scope must be all, room_charge, extra or service"})
		return
	}
	if input.Rate.IsNegative() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Tax rate cannot be negative"})
		return
	}

	tax := models.Tax{
		Name:      input.Name,
		Rate:      input.Rate,
		Type:      input.Type,
		AppliesTo: input.AppliesTo,
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if input.IsActive != nil {
		tax.IsActive = *input.IsActive
	}
	if err := storage.DB.Create(&tax).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "tax", tax.ID, nil, tax)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": tax})
}

func UpdateTax(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid tax ID"})
		return
	}

	var tax models.Tax
	if err := storage.DB.First(&tax, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := tax

	var input TaxInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !models.ValidTaxAppliesTo(input.AppliesTo) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Tax scope must be all, room_charge, extra or service"})
		return
	}
	if input.Rate.IsNegative() {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Tax rate cannot be negative"})
		return
	}

	tax.Name = input.Name
	tax.Rate = input.Rate
	tax.Type = input.Type
	tax.AppliesTo = input.AppliesTo
	tax.SortOrder = input.SortOrder
	if input.IsActive != nil {
		tax.IsActive = *input.IsActive
	}
	if err := storage.DB.Save(&tax).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "tax", tax.ID, before, tax)
	ctx.JSON(iris.Map{"success": true, "data": tax})
}

func DeleteTax(ctx iris.Context) {
	id, err := strconv.Atoi(ctx.Params().Get("id"))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid tax ID"})
		return
	}

	var tax models.Tax
	if err := storage.DB.First(&tax, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Delete(&tax)
	utils.Audit(ctx, "delete", "tax", tax.ID, tax, nil)
	ctx.JSON(iris.Map{"success": true})
}
