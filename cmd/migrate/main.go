// migrate 创建或更新数据库表结构，不启动 HTTP 服务
package main

import (
	"flag"
	"fmt"
	"os"

	"forum/cmd"
	"forum/config"
	"forum/infrastructure/persistence/gormdb"
	"forum/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Database.Type == "memory" {
		logger.Info("Memory storage has no schema; nothing to migrate")
		return nil
	}

	db, err := cmd.NewDatabaseConfig(cfg).Connect()
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := gormdb.Migrate(db); err != nil {
		return err
	}

	logger.Info("Migration completed",
		zap.String("driver", cfg.Database.Type),
		zap.String("database", cfg.Database.Database),
	)
	return nil
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
