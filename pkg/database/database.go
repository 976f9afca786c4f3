package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/posting/config"
	"github.com/d60-Lab/posting/pkg/logger"
)

// InitDB 按配置打开数据库连接并设置连接池
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database

	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case "postgres":
		dialector = postgres.Open(dbCfg.PostgresDSN())
	case "sqlite":
		dialector = sqlite.Open(dbCfg.SQLitePath())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(dbCfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbCfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isSQLiteMemory(dbCfg) {
		// 每个连接都是独立的内存库，只能保留一个连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		if dbCfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
		}
		if dbCfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
		}
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	logger.Info("database connected", zap.String("driver", dbCfg.Driver))
	return db, nil
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isSQLiteMemory(c config.DatabaseConfig) bool {
	return c.Driver == "sqlite" && (c.DSN == ":memory:" || strings.Contains(c.DSN, "mode=memory"))
}

// NewGormLogger 把 gorm 的日志转到 zap
func NewGormLogger(level string) gormlogger.Interface {
	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseGormLevel(level),
		IgnoreRecordNotFoundError: true,
	})
}

type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.L().Sugar().Infof(format, args...)
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
