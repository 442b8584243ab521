package repository

import (
	"testing"

	"github.com/xxx-ad-poster/internal/models"

	"github.com/shopspring/decimal"
)

func seedMemoryProgram(t *testing.T, store *MemoryStore, name, niche, status string) *models.AffiliateProgram {
	t.Helper()
	program := &models.AffiliateProgram{
		Name:      name,
		Niche:     niche,
		SignupURL: "https://example.com",
		Status:    status,
	}
	if err := store.Programs().Create(program); err != nil {
		t.Fatalf("create program failed: %v", err)
	}
	return program
}

func TestMemoryProgramList(t *testing.T) {
	store := NewMemoryStore()
	seedMemoryProgram(t, store, "CrakRevenue", "cams", "Approved")
	seedMemoryProgram(t, store, "LoveHoney", "toys", "Applied")
	seedMemoryProgram(t, store, "DatingGold", "dating", "Approved")

	programs, total, err := store.Programs().List(ProgramListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	// 新建在前
	if programs[0].Name != "DatingGold" {
		t.Fatalf("newest program should come first, got %s", programs[0].Name)
	}

	_, total, err = store.Programs().List(ProgramListFilter{Page: 1, PageSize: 10, Status: "Approved"})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("approved total want 2 got %d", total)
	}

	programs, total, err = store.Programs().List(ProgramListFilter{Page: 1, PageSize: 10, Search: "TOYS"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || programs[0].Name != "LoveHoney" {
		t.Fatalf("case-insensitive niche search should match LoveHoney, got total=%d", total)
	}

	programs, _, err = store.Programs().List(ProgramListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if len(programs) != 1 {
		t.Fatalf("second page want 1 row got %d", len(programs))
	}
}

func TestMemoryAdCreateInitsPerformance(t *testing.T) {
	store := NewMemoryStore()
	program := seedMemoryProgram(t, store, "CrakRevenue", "cams", "Approved")

	ad := &models.AdCreative{ProgramID: program.ID, Title: "Push US", TrafficSource: "push"}
	if err := store.Ads().Create(ad); err != nil {
		t.Fatalf("create ad failed: %v", err)
	}
	if ad.ID == 0 {
		t.Fatalf("created ad should be assigned an ID")
	}

	perf, err := store.Performance().GetByAdID(ad.ID)
	if err != nil {
		t.Fatalf("get performance failed: %v", err)
	}
	if perf == nil {
		t.Fatalf("ad create should init a zero performance row")
	}
	if perf.Impressions != 0 || perf.Revenue.String() != "0.00" {
		t.Fatalf("performance row should start at zero: %+v", perf)
	}
}

func TestMemoryListWithMetrics(t *testing.T) {
	store := NewMemoryStore()
	program := seedMemoryProgram(t, store, "CrakRevenue", "cams", "Approved")

	ad := &models.AdCreative{ProgramID: program.ID, Title: "Push US", TrafficSource: "push"}
	if err := store.Ads().Create(ad); err != nil {
		t.Fatalf("create ad failed: %v", err)
	}
	if err := store.Performance().Upsert(&models.AdPerformance{
		AdID:        ad.ID,
		Impressions: 1000,
		Clicks:      50,
		Sales:       5,
		Revenue:     models.NewMoneyFromDecimal(decimal.NewFromInt(125)),
	}); err != nil {
		t.Fatalf("upsert performance failed: %v", err)
	}

	rows, total, err := store.Ads().ListWithMetrics(AdListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list with metrics failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("row count want 1 got total=%d len=%d", total, len(rows))
	}
	row := rows[0]
	if row.ProgramName != "CrakRevenue" {
		t.Fatalf("program name should be joined, got %q", row.ProgramName)
	}
	if row.Impressions != 1000 || row.Clicks != 50 || row.Revenue.String() != "125.00" {
		t.Fatalf("metrics should be joined: %+v", row)
	}
}

func TestMemoryPerformanceUpsertOverwrites(t *testing.T) {
	store := NewMemoryStore()
	program := seedMemoryProgram(t, store, "CrakRevenue", "cams", "Approved")
	ad := &models.AdCreative{ProgramID: program.ID, Title: "Push US"}
	if err := store.Ads().Create(ad); err != nil {
		t.Fatalf("create ad failed: %v", err)
	}

	first := &models.AdPerformance{AdID: ad.ID, Impressions: 100, Revenue: models.MoneyZero()}
	if err := store.Performance().Upsert(first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second := &models.AdPerformance{AdID: ad.ID, Impressions: 900, Revenue: models.MoneyZero()}
	if err := store.Performance().Upsert(second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert should keep the original row ID, want %d got %d", first.ID, second.ID)
	}

	stored, err := store.Performance().GetByAdID(ad.ID)
	if err != nil {
		t.Fatalf("get performance failed: %v", err)
	}
	if stored.Impressions != 900 {
		t.Fatalf("second write should overwrite, got %d", stored.Impressions)
	}
}

func TestMemorySumTotals(t *testing.T) {
	store := NewMemoryStore()
	program := seedMemoryProgram(t, store, "CrakRevenue", "cams", "Approved")
	for i := 0; i < 2; i++ {
		ad := &models.AdCreative{ProgramID: program.ID, Title: "ad"}
		if err := store.Ads().Create(ad); err != nil {
			t.Fatalf("create ad failed: %v", err)
		}
		if err := store.Performance().Upsert(&models.AdPerformance{
			AdID:        ad.ID,
			Impressions: 100,
			Clicks:      10,
			Sales:       1,
			Revenue:     models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
		}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	totals, err := store.Performance().SumTotals()
	if err != nil {
		t.Fatalf("sum totals failed: %v", err)
	}
	if totals.Impressions != 200 || totals.Clicks != 20 || totals.Sales != 2 {
		t.Fatalf("totals aggregated wrong: %+v", totals)
	}
	if totals.Revenue.String() != "25.00" {
		t.Fatalf("revenue total want 25.00 got %s", totals.Revenue.String())
	}
}

func TestMemoryAdminRepository(t *testing.T) {
	store := NewMemoryStore()
	admins := store.Admins()

	if found, err := admins.GetByUsername("ghost"); err != nil || found != nil {
		t.Fatalf("missing admin should be nil,nil got %v,%v", found, err)
	}

	admin := &models.Admin{Username: "admin", PasswordHash: "hash"}
	if err := admins.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	count, err := admins.Count()
	if err != nil || count != 1 {
		t.Fatalf("count want 1 got %d (%v)", count, err)
	}

	admin.TokenVersion = 3
	if err := admins.Update(admin); err != nil {
		t.Fatalf("update admin failed: %v", err)
	}
	reloaded, err := admins.GetByID(admin.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.TokenVersion != 3 {
		t.Fatalf("token version want 3 got %d", reloaded.TokenVersion)
	}
}
