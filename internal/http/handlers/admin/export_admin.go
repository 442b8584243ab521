package admin

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xxx-ad-poster/internal/http/response"
	"github.com/xxx-ad-poster/internal/repository"
	"github.com/xxx-ad-poster/internal/service"

	"github.com/gin-gonic/gin"
)

const exportBatchSize = 500

// ExportProgramsCSV 导出联盟项目 CSV
func (h *Handler) ExportProgramsCSV(c *gin.Context) {
	filter := repository.ProgramListFilter{
		Page:     1,
		PageSize: exportBatchSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}

	programs, _, err := h.ProgramService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "项目列表获取失败", err)
		return
	}

	filename := fmt.Sprintf("programs_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{
		"id",
		"name",
		"niche",
		"geo_focus",
		"signup_url",
		"status",
		"notes",
		"created_at",
	}); err != nil {
		requestLog(c).Errorw("program_export_header_write_failed", "error", err)
		return
	}

	page := 1
	for {
		for _, program := range programs {
			record := []string{
				strconv.FormatUint(uint64(program.ID), 10),
				program.Name,
				program.Niche,
				program.GeoFocus,
				program.SignupURL,
				program.Status,
				program.Notes,
				program.CreatedAt.Format(time.RFC3339),
			}
			if err := writer.Write(record); err != nil {
				requestLog(c).Errorw("program_export_row_write_failed", "page", page, "error", err)
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			requestLog(c).Errorw("program_export_flush_failed", "page", page, "error", err)
			return
		}
		if len(programs) < exportBatchSize {
			break
		}
		page++
		filter.Page = page
		programs, _, err = h.ProgramService.List(filter)
		if err != nil {
			requestLog(c).Errorw("program_export_batch_fetch_failed", "page", page, "error", err)
			return
		}
	}
}

// ExportAdsCSV 导出广告创意 CSV，附带投放计数与派生指标列
func (h *Handler) ExportAdsCSV(c *gin.Context) {
	programID, _ := strconv.ParseUint(c.Query("program_id"), 10, 32)
	filter := repository.AdListFilter{
		Page:          1,
		PageSize:      exportBatchSize,
		ProgramID:     uint(programID),
		TrafficSource: c.Query("traffic_source"),
		Search:        c.Query("search"),
	}

	ads, _, err := h.AdService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "创意列表获取失败", err)
		return
	}

	filename := fmt.Sprintf("ads_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{
		"id",
		"program_id",
		"program_name",
		"title",
		"angle",
		"headline",
		"body",
		"call_to_action",
		"placement_type",
		"traffic_source",
		"campaign_notes",
		"impressions",
		"clicks",
		"leads",
		"sales",
		"revenue",
		"ctr",
		"cr",
		"epc",
		"created_at",
	}); err != nil {
		requestLog(c).Errorw("ad_export_header_write_failed", "error", err)
		return
	}

	page := 1
	for {
		for _, ad := range ads {
			metrics := service.ComputeDerivedMetrics(ad.Impressions, ad.Clicks, ad.Sales, ad.Revenue)
			record := []string{
				strconv.FormatUint(uint64(ad.ID), 10),
				strconv.FormatUint(uint64(ad.ProgramID), 10),
				ad.ProgramName,
				ad.Title,
				ad.Angle,
				ad.Headline,
				ad.Body,
				ad.CallToAction,
				ad.PlacementType,
				ad.TrafficSource,
				ad.CampaignNotes,
				strconv.FormatInt(ad.Impressions, 10),
				strconv.FormatInt(ad.Clicks, 10),
				strconv.FormatInt(ad.Leads, 10),
				strconv.FormatInt(ad.Sales, 10),
				ad.Revenue.String(),
				strconv.FormatFloat(metrics.CTR, 'f', 2, 64),
				strconv.FormatFloat(metrics.CR, 'f', 2, 64),
				metrics.EPC.String(),
				ad.CreatedAt.Format(time.RFC3339),
			}
			if err := writer.Write(record); err != nil {
				requestLog(c).Errorw("ad_export_row_write_failed", "page", page, "error", err)
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			requestLog(c).Errorw("ad_export_flush_failed", "page", page, "error", err)
			return
		}
		if len(ads) < exportBatchSize {
			break
		}
		page++
		filter.Page = page
		ads, _, err = h.AdService.List(filter)
		if err != nil {
			requestLog(c).Errorw("ad_export_batch_fetch_failed", "page", page, "error", err)
			return
		}
	}
}
