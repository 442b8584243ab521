package repository

import (
	"time"

	"github.com/xxx-ad-poster/internal/models"
)

// ProgramListFilter 查询联盟项目列表的过滤条件
type ProgramListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// AdListFilter 查询广告创意列表的过滤条件
type AdListFilter struct {
	Page          int
	PageSize      int
	ProgramID     uint
	TrafficSource string
	Search        string
}

// AdMetricsRow 创意连同项目名与投放计数的联查行（无投放数据时计数为零）
type AdMetricsRow struct {
	ID            uint         `json:"id"`
	ProgramID     uint         `json:"program_id"`
	ProgramName   string       `json:"program_name"`
	Title         string       `json:"title"`
	Angle         string       `json:"angle"`
	Headline      string       `json:"headline"`
	Body          string       `json:"body"`
	CallToAction  string       `json:"call_to_action"`
	PlacementType string       `json:"placement_type"`
	TrafficSource string       `json:"traffic_source"`
	CampaignNotes string       `json:"campaign_notes"`
	CreatedAt     time.Time    `json:"created_at"`
	Impressions   int64        `json:"impressions"`
	Clicks        int64        `json:"clicks"`
	Leads         int64        `json:"leads"`
	Sales         int64        `json:"sales"`
	Revenue       models.Money `json:"revenue"`
}

// PerformanceTotals 全量投放计数汇总
type PerformanceTotals struct {
	Impressions int64        `json:"impressions"`
	Clicks      int64        `json:"clicks"`
	Leads       int64        `json:"leads"`
	Sales       int64        `json:"sales"`
	Revenue     models.Money `json:"revenue"`
}
