package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Database is the single gateway every repository goes through. It is
// opened once at start-up and closed at shutdown.
type Database interface {
	GetDB() *gorm.DB
	Ping(ctx context.Context) error
	Close() error
}

type GormDatabase struct {
	DB *gorm.DB
}

func NewGormDatabase(db *gorm.DB) *GormDatabase { return &GormDatabase{DB: db} }

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

func (g *GormDatabase) Ping(ctx context.Context) error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormDatabase) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	return sqlDB.Close()
}
