package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dpytaylo/simple-messenger/internal/accounts"
	"github.com/dpytaylo/simple-messenger/internal/config"
	"github.com/dpytaylo/simple-messenger/internal/kv"
	"github.com/dpytaylo/simple-messenger/internal/logger"
)

type Infra struct {
	DB    *sql.DB
	Redis *goredis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	db, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := accounts.Migrate(ctx, db); err != nil {
		return nil, err
	}

	logger.Info("database ready")

	redisClient, err := kv.DialRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready")

	return &Infra{
		DB:    db,
		Redis: redisClient,
	}, nil
}
