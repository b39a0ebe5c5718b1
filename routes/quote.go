package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/onabhani/Nozule-Suite-sub000/services"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
)

// GetQuote prices a stay night by night. Query params: roomTypeID, checkIn
// (YYYY-MM-DD), nights.
func GetQuote(ctx iris.Context) {
	roomTypeID := ctx.URLParamIntDefault("roomTypeID", 0)
	nights := ctx.URLParamIntDefault("nights", 1)
	checkInParam := ctx.URLParam("checkIn")

	if roomTypeID <= 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "roomTypeID is required"})
		return
	}
	checkIn, err := time.Parse("2006-01-02", checkInParam)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "checkIn must be YYYY-MM-DD"})
		return
	}

	qs := services.NewQuoteService(storage.DB, storage.Redis)
	quotes, err := qs.QuoteStay(checkIn, nights, uint(roomTypeID))
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": err.Error()})
		return
	}

	total := quotes[0].GrandTotal
	for _, q := range quotes[1:] {
		total = total.Add(q.GrandTotal)
	}

	ctx.JSON(iris.Map{
		"success":  true,
		"checkIn":  checkIn.Format("2006-01-02"),
		"nights":   nights,
		"currency": quotes[0].CurrencyCode,
		"total":    total,
		"nightly":  quotes,
	})
}
