package models

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DBPoolConfig 数据库连接池配置
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// InitDB 初始化数据库连接（driver 为 memory 时由仓储层使用内存实现，不经过这里）
func InitDB(driver, dsn string, pool DBPoolConfig) error {
	var err error
	normalized := strings.ToLower(strings.TrimSpace(driver))
	var dialector gorm.Dialector
	switch normalized {
	case "", "sqlite":
		// glebarez/sqlite 是基于 modernc.org/sqlite 的纯 Go 驱动
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	applyDBPool(sqlDB, pool)
	return nil
}

func applyDBPool(sqlDB *sql.DB, pool DBPoolConfig) {
	if sqlDB == nil {
		return
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// AutoMigrate 自动迁移所有数据库表
func AutoMigrate() error {
	if err := DB.AutoMigrate(
		&Admin{},
		&AffiliateProgram{},
		&AdCreative{},
		&AdPerformance{},
	); err != nil {
		return err
	}
	return ensureRevisionColumns()
}

// ensureRevisionColumns 补齐历史版本缺失的列（AutoMigrate 之外的显式检查，
// 旧库升级时保证新增列存在且旧数据可读）
func ensureRevisionColumns() error {
	migrator := DB.Migrator()
	type columnCheck struct {
		model  interface{}
		column string
	}
	checks := []columnCheck{
		{&AdCreative{}, "traffic_source"},
		{&AdCreative{}, "campaign_notes"},
		{&AdPerformance{}, "impressions"},
		{&AdPerformance{}, "revenue"},
	}
	for _, c := range checks {
		if migrator.HasColumn(c.model, c.column) {
			continue
		}
		if err := migrator.AddColumn(c.model, c.column); err != nil {
			return fmt.Errorf("add column %s failed: %w", c.column, err)
		}
	}
	return nil
}
