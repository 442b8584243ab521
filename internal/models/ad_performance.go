package models

import "time"

// AdPerformance 广告投放数据表（每条创意一行，整行覆盖式更新）
type AdPerformance struct {
	ID          uint      `gorm:"primarykey" json:"id"`                     // 主键
	AdID        uint      `gorm:"uniqueIndex;not null" json:"ad_id"`        // 关联创意（唯一）
	Impressions int64     `gorm:"not null;default:0" json:"impressions"`    // 展示数
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`         // 点击数
	Leads       int64     `gorm:"not null;default:0" json:"leads"`          // 线索数
	Sales       int64     `gorm:"not null;default:0" json:"sales"`          // 成交数
	Revenue     Money     `gorm:"type:decimal(12,2);default:0" json:"revenue"` // 收入
	CreatedAt   time.Time `json:"created_at"`                               // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                  // 更新时间
}

// TableName 指定表名
func (AdPerformance) TableName() string {
	return "ad_performance"
}
