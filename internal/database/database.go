// Package database
package database

import (
	"context"
	"database/sql"
	"fmt"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ShutdownCallback struct {
	pool *sql.DB
}

func (dc *ShutdownCallback) Invoke(_ context.Context) error {
	return dc.pool.Close()
}

func ConnectDatabase(log log.LoggerInterface, config *c.Config, debug bool) (global.Callable, *operation.DatabaseOperations, error) {
	databaseConfig := config.Database

	connectionConfig := &gorm.Config{PrepareStmt: true}
	if !debug {
		connectionConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(databaseConfig.GetConnection(log), connectionConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("error occurred while connecting to database: %w", err)
	}

	if err := db.Migrator().AutoMigrate(&operation.FlyingSite{}, &operation.GalleryImage{}, &operation.User{}); err != nil {
		return nil, nil, fmt.Errorf("error occurred while migrating database: %w", err)
	}

	dbPool, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("error occurred while creating database pool: %w", err)
	}

	maxOpenConnections := float32(databaseConfig.ServerMaxConnections) * 0.8
	maxIdleConnections := maxOpenConnections / 5

	dbPool.SetMaxIdleConns(int(maxIdleConnections))
	dbPool.SetMaxOpenConns(int(maxOpenConnections))
	dbPool.SetConnMaxLifetime(databaseConfig.ConnectIdleDuration)
	if err := dbPool.Ping(); err != nil {
		return nil, nil, fmt.Errorf("error occurred while pinging database: %w", err)
	}

	operations := operation.NewDatabaseOperations(
		NewSiteOperation(db, databaseConfig.QueryDuration, databaseConfig),
		NewUserOperation(db, databaseConfig.QueryDuration, databaseConfig),
	)

	return &ShutdownCallback{pool: dbPool}, operations, nil
}
