package db

import (
	"context"
	"time"

	glebarez "github.com/glebarez/sqlite"
	"github.com/smallbiznis/eventdesk/internal/config"
	"github.com/smallbiznis/eventdesk/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
}

// New opens the primary database with the zap query logger, tracing and
// pool metrics attached.
func New(p Params) (*gorm.DB, error) {
	dialector, err := Dialect(p.Config)
	if err != nil {
		return nil, err
	}

	gormCfg := logger.GormLoggerConfigFor(
		p.Config.DBLogLevel,
		time.Duration(p.Config.DBSlowQueryMS)*time.Millisecond,
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.NewGormLogger(p.Log, gormCfg),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(p.Config.DBName),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return nil, err
	}
	if err := db.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          p.Config.DBName,
		RefreshInterval: 15,
		StartServer:     false,
	})); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(p.Config.DBMaxIdleConn)
	sqlDB.SetMaxOpenConns(p.Config.DBMaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(p.Config.DBConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(p.Config.DBConnMaxIdleTime) * time.Second)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		},
		OnStop: func(context.Context) error {
			p.Log.Info("closing database")
			return sqlDB.Close()
		},
	})

	p.Log.Info("database opened",
		zap.String("type", p.Config.DBType),
		zap.String("name", p.Config.DBName),
	)
	return db, nil
}

// NewTest opens an isolated in-memory sqlite database using the pure-Go driver.
func NewTest(name string) (*gorm.DB, error) {
	dsn := "file:" + name + "?mode=memory&cache=shared"
	return gorm.Open(glebarez.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
}
