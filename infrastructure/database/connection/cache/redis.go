package cache

import (
	"os"
	"sync"

	"attendly.io/infrastructure/logger"
	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

var (
	instance *RedisClient
	once     = sync.Once{}
)

func ConnectToCache() {
	GetInstance()
}

func GetInstance() (*RedisClient, error) {
	once.Do(func() {
		opt := &redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
			PoolSize: 10,
		}
		instance = &RedisClient{Client: redis.NewClient(opt)}
		logger.Info("connected to redis successfully")
	})
	return instance, nil
}
