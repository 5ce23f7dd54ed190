//go:build integration

package testdb

import (
	"context"
	"time"

	"finquest/backend/utils"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Handle struct {
	DB   *gorm.DB
	stop func(context.Context) error
}

func (h *Handle) Close() {
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
}

// StartPostgres runs a disposable PostgreSQL container and migrates it.
func StartPostgres(ctx context.Context) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("finquest"),
		postgres.WithUsername("finquest"),
		postgres.WithPassword("finquest"),
		tc.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute)),
	)
	if err != nil {
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(uri), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, err
	}
	if err := utils.Migrate(db); err != nil {
		_ = pg.Terminate(ctx)
		return nil, err
	}
	return &Handle{DB: db, stop: pg.Terminate}, nil
}
