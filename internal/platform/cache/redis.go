package cache

import (
	"context"

	"codeforge/internal/platform/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		zap.S().Fatalw("could not connect to Redis", "err", err)
	}
	zap.S().Info("connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		zap.S().Info("redis connection closed")
	}
}
