package database

import (
	"Microblog/internal/api/config"
	"Microblog/internal/model"
	"Microblog/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ParseDSN 解析 DSN，强制 parseTime 并统一使用 UTC
func ParseDSN(dsn string) (*mysqldriver.Config, error) {
	dsnCfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.UTC
	return dsnCfg, nil
}

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dsnCfg, err := ParseDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	dialector := mysql.New(mysql.Config{
		DSNConfig: dsnCfg,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.NewGormLogger(),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	if cfg.AutoMigrate {
		if err = db.AutoMigrate(model.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Info("Database schema migrated.")
	}

	log.Info("Database connection established successfully.")
	return db, nil
}
