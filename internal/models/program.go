package models

import "time"

// AffiliateProgram 联盟项目表（只增不删，记录调研与申请进度）
type AffiliateProgram struct {
	ID        uint      `gorm:"primarykey" json:"id"`          // 主键
	Name      string    `gorm:"not null;index" json:"name"`    // 项目名称（必填）
	Niche     string    `json:"niche"`                         // 细分领域
	GeoFocus  string    `json:"geo_focus"`                     // 主要投放地区
	SignupURL string    `gorm:"not null" json:"signup_url"`    // 注册链接（必填）
	Status    string    `gorm:"not null;index" json:"status"`  // 状态（Researching/Applied/Approved/Rejected/Paused）
	Notes     string    `gorm:"type:text" json:"notes"`        // 备注
	CreatedAt time.Time `gorm:"index" json:"created_at"`       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                    // 更新时间
}

// TableName 指定表名
func (AffiliateProgram) TableName() string {
	return "affiliate_programs"
}
