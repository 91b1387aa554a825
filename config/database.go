package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/yeremiapane/bike-reservation/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Database membungkus koneksi gorm beserta pool di bawahnya.
type Database struct {
	DB   *gorm.DB
	pool *pgxpool.Pool
}

// Close menutup koneksi gorm dan pool pgx (jika ada).
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// InitDB membuka koneksi sesuai cfg.Database.Driver dengan ukuran pool
// dibatasi PoolSize, tanpa overflow.
func InitDB(ctx context.Context, cfg *Config) (*Database, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{TablePrefix: tablePrefix(cfg.Database.Schema)},
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var (
		dialector gorm.Dialector
		pool      *pgxpool.Pool
	)

	switch cfg.Database.Driver {
	case DriverPostgres:
		p, err := newPgxPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		pool = p
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)})
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	limitPool(sqlDB, cfg.Database.PoolSize)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("ping %s database: %w", cfg.Database.Driver, err)
	}

	utils.InfoLogger.Printf("Connected to %s database %s (pool=%d)", cfg.Database.Driver, cfg.RedactedDSN(), cfg.Database.PoolSize)
	return &Database{DB: db, pool: pool}, nil
}

func newPgxPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		// Jangan bungkus err: pesannya bisa memuat DSN.
		return nil, fmt.Errorf("parse postgres dsn for %s", cfg.RedactedDSN())
	}
	pcfg.MaxConns = int32(cfg.Database.PoolSize)
	pcfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
	pcfg.ConnConfig.StatementCacheCapacity = 128

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

func limitPool(sqlDB *sql.DB, size int) {
	sqlDB.SetMaxOpenConns(size)
	sqlDB.SetMaxIdleConns(size)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

func tablePrefix(schemaName string) string {
	if schemaName == "" {
		return ""
	}
	return schemaName + "."
}
