package models

import "time"

// AdCreative 广告创意表（文案定稿后只增不改）
type AdCreative struct {
	ID            uint      `gorm:"primarykey" json:"id"`             // 主键
	ProgramID     uint      `gorm:"not null;index" json:"program_id"` // 所属联盟项目
	Title         string    `gorm:"not null" json:"title"`            // 内部标题
	Angle         string    `json:"angle"`                            // 钩子角度
	Headline      string    `gorm:"type:text" json:"headline"`        // 广告标题
	Body          string    `gorm:"type:text" json:"body"`            // 广告正文
	CallToAction  string    `json:"call_to_action"`                   // 行动号召
	PlacementType string    `json:"placement_type"`                   // 投放位类型
	TrafficSource string    `gorm:"index" json:"traffic_source"`      // 流量来源
	CampaignNotes string    `gorm:"type:text" json:"campaign_notes"`  // 投放备注
	CreatedAt     time.Time `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (AdCreative) TableName() string {
	return "ad_creatives"
}
