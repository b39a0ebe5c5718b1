package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/storage"
	"github.com/onabhani/Nozule-Suite-sub000/utils"
)

// buildTestApp creates a minimal Iris app with the rate admin routes, a JWT
// verifier and an in-memory database behind the storage globals.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.RatePlan{},
		&models.SeasonalRate{},
		&models.PromoCode{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	storage.DB = db

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/rate-plans", GetRatePlans)
		admin.Post("/rate-plans", CreateRatePlan)
		admin.Post("/seasonal-rates", CreateSeasonalRate)
		admin.Get("/promo-codes", GetPromoCodes)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestRatePlanRBAC(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/rate-plans", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/rate-plans", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("user"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp2.Code)
	}

	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/rate-plans", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp3.Code)
	}
}

func TestCreateRatePlanRejectsUnknownModifierType(t *testing.T) {
	app := buildTestApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"code":          "miles",
		"name":          "Mileage",
		"modifierType":  "mileage",
		"modifierValue": "5",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/rate-plans", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown modifier type, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	storage.DB.Model(&models.RatePlan{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected rate plan was persisted")
	}
}

func TestCreateRatePlanUppercasesCode(t *testing.T) {
	app := buildTestApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"code":          "corp10",
		"name":          "Corporate",
		"modifierType":  "percentage",
		"modifierValue": "-10",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/rate-plans", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var plan models.RatePlan
	if err := storage.DB.First(&plan).Error; err != nil {
		t.Fatalf("loading created plan: %v", err)
	}
	if plan.Code != "CORP10" {
		t.Errorf("expected code CORP10, got %q", plan.Code)
	}
	if plan.Status != "active" {
		t.Errorf("expected default status active, got %q", plan.Status)
	}

	var audits int64
	storage.DB.Model(&models.AuditLog{}).Count(&audits)
	if audits != 1 {
		t.Errorf("expected 1 audit row, got %d", audits)
	}
}

func TestPromoCodeListPaginates(t *testing.T) {
	app := buildTestApp(t)

	for _, code := range []string{"ALPHA", "BRAVO", "CHARLIE"} {
		promo := models.PromoCode{Code: code, DiscountType: "fixed", IsActive: true}
		if err := storage.DB.Create(&promo).Error; err != nil {
			t.Fatalf("seeding promo %s: %v", code, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/promo-codes?page=2&perPage=2", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Success bool `json:"success"`
		Data    []struct {
			Code string `json:"code"`
		} `json:"data"`
		Meta struct {
			Page    int   `json:"page"`
			PerPage int   `json:"perPage"`
			Total   int64 `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding page response: %v", err)
	}
	if !payload.Success {
		t.Errorf("expected success envelope")
	}
	if payload.Meta.Total != 3 || payload.Meta.Page != 2 || payload.Meta.PerPage != 2 {
		t.Errorf("unexpected meta %+v", payload.Meta)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected 1 promo on page 2, got %d", len(payload.Data))
	}
	if payload.Data[0].Code != "CHARLIE" {
		t.Errorf("expected CHARLIE on page 2, got %q", payload.Data[0].Code)
	}
}

func TestCreateSeasonalRateRejectsInvertedRange(t *testing.T) {
	app := buildTestApp(t)

	roomType := models.RoomType{Name: "Deluxe", Code: "DLX"}
	if err := storage.DB.Create(&roomType).Error; err != nil {
		t.Fatalf("seeding room type: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"roomTypeID":    roomType.ID,
		"name":          "Backwards",
		"startDate":     "2026-08-31",
		"endDate":       "2026-06-01",
		"modifierType":  "percentage",
		"modifierValue": "25",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/seasonal-rates", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted date range, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	storage.DB.Model(&models.SeasonalRate{}).Count(&count)
	if count != 0 {
		t.Errorf("inverted seasonal rate was persisted")
	}
}
