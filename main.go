package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/onabhani/Nozule-Suite-sub000/routes"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the front desk dashboard (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUser)
	}

	pricing := app.Party("/api/pricing", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		pricing.Get("/quote", routes.GetQuote)
		pricing.Post("/convert", routes.ConvertAmount)
		pricing.Post("/promo/preview", routes.PreviewPromoCode)
		pricing.Post("/promo/redeem", routes.RedeemPromoCode)
	}

	folio := app.Party("/api/folio", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		folio.Get("/", routes.GetFolios)
		folio.Post("/", routes.OpenFolio)
		folio.Get("/{id:uint}", routes.GetFolio)
		folio.Post("/{id:uint}/charges", routes.PostFolioCharge)
		folio.Post("/{id:uint}/payments", routes.RecordFolioPayment)
		folio.Post("/{id:uint}/close", routes.CloseFolio)
		folio.Post("/{id:uint}/void", routes.VoidFolio)
	}

	loyalty := app.Party("/api/loyalty", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		loyalty.Get("/rewards", routes.GetLoyaltyRewards)
		loyalty.Get("/members", routes.GetLoyaltyMembers)
		loyalty.Get("/members/{id:uint}", routes.GetLoyaltyMember)
		loyalty.Post("/members", routes.CreateLoyaltyMember)
		loyalty.Post("/members/{id:uint}/earn", routes.EarnLoyaltyPoints)
		loyalty.Post("/members/{id:uint}/redeem", routes.RedeemLoyaltyReward)
		loyalty.Get("/members/{id:uint}/transactions", routes.GetLoyaltyTransactions)
	}

	// Admin routes
	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/room-types", routes.GetRoomTypes)
		admin.Get("/room-types/{id:uint}", routes.GetRoomType)
		admin.Post("/room-types", routes.CreateRoomType)
		admin.Patch("/room-types/{id:uint}", routes.UpdateRoomType)
		admin.Delete("/room-types/{id:uint}", routes.DeleteRoomType)
		admin.Get("/rooms", routes.GetRooms)
		admin.Post("/rooms", routes.CreateRoom)
		admin.Patch("/rooms/{id:uint}", routes.UpdateRoom)
		admin.Patch("/rooms/{id:uint}/housekeeping", routes.SetRoomHousekeepingStatus)
		admin.Delete("/rooms/{id:uint}", routes.DeleteRoom)
		admin.Get("/rate-plans", routes.GetRatePlans)
		admin.Post("/rate-plans", routes.CreateRatePlan)
		admin.Patch("/rate-plans/{id:uint}", routes.UpdateRatePlan)
		admin.Delete("/rate-plans/{id:uint}", routes.DeleteRatePlan)
		admin.Get("/seasonal-rates", routes.GetSeasonalRates)
		admin.Post("/seasonal-rates", routes.CreateSeasonalRate)
		admin.Patch("/seasonal-rates/{id:uint}", routes.UpdateSeasonalRate)
		admin.Delete("/seasonal-rates/{id:uint}", routes.DeleteSeasonalRate)
		admin.Get("/dow-rules", routes.GetDowRules)
		admin.Post("/dow-rules", routes.CreateDowRule)
		admin.Patch("/dow-rules/{id:uint}", routes.UpdateDowRule)
		admin.Delete("/dow-rules/{id:uint}", routes.DeleteDowRule)
		admin.Get("/occupancy-rules", routes.GetOccupancyRules)
		admin.Post("/occupancy-rules", routes.CreateOccupancyRule)
		admin.Patch("/occupancy-rules/{id:uint}", routes.UpdateOccupancyRule)
		admin.Delete("/occupancy-rules/{id:uint}", routes.DeleteOccupancyRule)
		admin.Get("/events", routes.GetEventOverrides)
		admin.Post("/events", routes.CreateEventOverride)
		admin.Patch("/events/{id:uint}", routes.UpdateEventOverride)
		admin.Delete("/events/{id:uint}", routes.DeleteEventOverride)
		admin.Get("/taxes", routes.GetTaxes)
		admin.Post("/taxes", routes.CreateTax)
		admin.Patch("/taxes/{id:uint}", routes.UpdateTax)
		admin.Delete("/taxes/{id:uint}", routes.DeleteTax)
		admin.Get("/currencies", routes.GetCurrencies)
		admin.Post("/currencies", routes.CreateCurrency)
		admin.Patch("/currencies/{code}/rate", routes.SetExchangeRate)
		admin.Get("/currencies/{code}/history", routes.GetExchangeRateHistory)
		admin.Post("/currencies/{code}/default", utils.SuperAdminOnlyMiddleware, routes.SetDefaultCurrency)
		admin.Get("/promo-codes", routes.GetPromoCodes)
		admin.Post("/promo-codes", routes.CreatePromoCode)
		admin.Patch("/promo-codes/{id:uint}", routes.UpdatePromoCode)
		admin.Delete("/promo-codes/{id:uint}", routes.DeletePromoCode)
		admin.Get("/loyalty/tiers", routes.GetLoyaltyTiers)
		admin.Post("/loyalty/tiers", routes.CreateLoyaltyTier)
		admin.Post("/loyalty/rewards", routes.CreateLoyaltyReward)
		admin.Post("/loyalty/members/{id:uint}/adjust", routes.AdjustLoyaltyPoints)
	}

	app.Listen(":4000")
}
