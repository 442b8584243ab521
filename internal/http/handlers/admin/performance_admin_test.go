package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestUpdateAdPerformanceHandler(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	program := seedHandlerProgram(t, h, "CrakRevenue")
	ad := seedHandlerAd(t, h, program.ID, "Push US")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"impressions":1000,"clicks":50,"leads":8,"sales":5,"revenue":"125.00"}`
	url := fmt.Sprintf("/admin/ads/%d/performance", ad.ID)
	c.Request = httptest.NewRequest(http.MethodPut, url, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(ad.ID), 10)}}

	h.UpdateAdPerformance(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Impressions int64  `json:"impressions"`
			Revenue     string `json:"revenue"`
			Metrics     struct {
				CTR float64 `json:"ctr"`
				CR  float64 `json:"cr"`
				EPC string  `json:"epc"`
			} `json:"metrics"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.Impressions != 1000 || resp.Data.Revenue != "125.00" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.Data.Metrics.CTR != 5.0 || resp.Data.Metrics.CR != 10.0 || resp.Data.Metrics.EPC != "2.50" {
		t.Fatalf("derived metrics mismatch: %+v", resp.Data.Metrics)
	}
}

func TestUpdateAdPerformanceHandlerNegative(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	program := seedHandlerProgram(t, h, "CrakRevenue")
	seedHandlerAd(t, h, program.ID, "Push US")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"impressions":-1}`
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/ads/1/performance", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.UpdateAdPerformance(c)

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

func TestGetAdPerformanceHandlerZeroRow(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	program := seedHandlerProgram(t, h, "CrakRevenue")
	seedHandlerAd(t, h, program.ID, "Push US")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/ads/1/performance", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.GetAdPerformance(c)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Impressions int64  `json:"impressions"`
			Revenue     string `json:"revenue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.Impressions != 0 || resp.Data.Revenue != "0.00" {
		t.Fatalf("fresh ad should report zero counters: %+v", resp.Data)
	}
}

func TestComparePerformanceHandlerTooFew(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"ad_ids":[1],"metric":"ctr"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/performance/compare", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ComparePerformance(c)

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
