package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "attendly.io/infrastructure/database/connection/cache"
	"attendly.io/infrastructure/logger"
)

var Cache RedisRepository

type RedisRepository struct {
	Client *redis.Client
}

func (redisRepo *RedisRepository) preRequest() {
	if redisRepo.Client == nil {
		client, _ := redisClient.GetInstance()
		redisRepo.Client = client.Client
		logger.Info("redis repository initialisation complete")
	}
}

func (redisRepo *RedisRepository) CreateEntry(key string, payload interface{}, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()
	_, err := redisRepo.Client.Set(ctx, key, payload, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return true
}

func (redisRepo *RedisRepository) FindOne(key string) *string {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Get(ctx, key).Result()

	if err != nil {
		if err == redis.Nil {
			return nil
		}
		logger.Error("redis error occured while running FindOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}
	return &result
}

func (redisRepo *RedisRepository) DeleteOne(key string) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Del(ctx, key).Result()

	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return int(result) == 1
}

func (redisRepo *RedisRepository) IncrementField(key string, amount int64) int64 {
	redisRepo.preRequest()
	ctx := context.Background()

	result := redisRepo.Client.IncrBy(ctx, key, amount)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running IncrementField", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	return result.Val()
}

func (redisRepo *RedisRepository) ExpireKey(key string, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	result := redisRepo.Client.Expire(ctx, key, ttl)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running ExpireKey", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return result.Val()
}

func (redisRepo *RedisRepository) KeyTTL(key string) *time.Duration {
	redisRepo.preRequest()
	ctx := context.Background()

	result := redisRepo.Client.TTL(ctx, key)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running KeyTTL", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}
	val := result.Val()
	return &val
}

func (redisRepo *RedisRepository) CreateInSortedSet(key string, score float64, member interface{}) int64 {
	redisRepo.preRequest()
	ctx := context.Background()
	added := redisRepo.Client.ZAdd(ctx, key, redis.Z{
		Score: score, Member: member,
	})

	if err := added.Err(); err != nil {
		logger.Error("redis error occured while running CreateInSortedSet", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	return added.Val()
}

func (redisRepo *RedisRepository) TrimSortedSetByScore(key string, max string) int64 {
	redisRepo.preRequest()
	ctx := context.Background()

	removed := redisRepo.Client.ZRemRangeByScore(ctx, key, "-inf", max)
	if err := removed.Err(); err != nil {
		logger.Error("redis error occured while running TrimSortedSetByScore", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	return removed.Val()
}

func (redisRepo *RedisRepository) CountSortedSetByScore(key string, min string, max string) int64 {
	redisRepo.preRequest()
	ctx := context.Background()

	count := redisRepo.Client.ZCount(ctx, key, min, max)
	if err := count.Err(); err != nil {
		logger.Error("redis error occured while running CountSortedSetByScore", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	return count.Val()
}
