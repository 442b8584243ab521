package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/provider"
	"github.com/xxx-ad-poster/internal/repository"
	"github.com/xxx-ad-poster/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.AffiliateProgram{},
		&models.AdCreative{},
		&models.AdPerformance{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	programRepo := repository.NewProgramRepository(db)
	adRepo := repository.NewAdCreativeRepository(db)
	perfRepo := repository.NewAdPerformanceRepository(db)

	aigenService := service.NewAIGenService(&config.AIGenConfig{})
	webhookService := service.NewWebhookService(&config.WebhookConfig{}, nil)

	h := &Handler{Container: &provider.Container{
		ProgramService:     service.NewProgramService(programRepo),
		AdService:          service.NewAdService(adRepo, programRepo, aigenService, webhookService),
		PerformanceService: service.NewPerformanceService(perfRepo, adRepo, webhookService),
	}}
	return h, db
}

func seedHandlerProgram(t *testing.T, h *Handler, name string) *models.AffiliateProgram {
	t.Helper()
	program, err := h.ProgramService.Create(service.CreateProgramInput{
		Name:      name,
		Niche:     "cams",
		SignupURL: "https://example.com/signup",
		Status:    constants.ProgramStatusApproved,
	})
	if err != nil {
		t.Fatalf("seed program failed: %v", err)
	}
	return program
}

func TestCreateProgramHandler(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"name":"CrakRevenue","signup_url":"https://example.com/signup","niche":"cams"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/programs", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateProgram(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			ID     uint   `json:"id"`
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.ID == 0 || resp.Data.Name != "CrakRevenue" {
		t.Fatalf("unexpected program data: %+v", resp.Data)
	}
	if resp.Data.Status != constants.ProgramStatusResearching {
		t.Fatalf("default status want Researching got %s", resp.Data.Status)
	}
}

func TestCreateProgramHandlerBadStatus(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"name":"X","signup_url":"https://x.com","status":"Live"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/programs", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateProgram(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestGetProgramsHandlerPagination(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	seedHandlerProgram(t, h, "CrakRevenue")
	seedHandlerProgram(t, h, "DatingGold")
	seedHandlerProgram(t, h, "LoveHoney")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/programs?page=1&page_size=2", nil)

	h.GetPrograms(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Pagination struct {
			Page      int   `json:"page"`
			PageSize  int   `json:"page_size"`
			Total     int64 `json:"total"`
			TotalPage int64 `json:"total_page"`
		} `json:"pagination"`
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination.Total != 3 || resp.Pagination.TotalPage != 2 {
		t.Fatalf("pagination want total=3 total_page=2 got %+v", resp.Pagination)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("data len want 2 got %d", len(resp.Data))
	}
}

func TestGetProgramHandlerNotFound(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/programs/404", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}

	h.GetProgram(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}
