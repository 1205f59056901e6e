package migration

import (
	"context"

	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/smallbiznis/scootfleet/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if !cfg.MigrateOnStart {
			log.Info("migrations skipped")
			return nil
		}

		switch cfg.DBType {
		case "sqlite":
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		default:
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		return seed.EnsureReferenceData(context.Background(), conn)
	}),
)
