package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultTTL bounds how long cached clustering results stay replayable.
const ResultTTL = 24 * time.Hour

// redisClient holds the Redis client connection
var redisClient *redis.Client

// Init initializes the Redis connection and sets the global client variable
func Init(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")
	redisClient = client

	return client
}

// GetClient returns the global Redis client connection
func GetClient() *redis.Client {
	return redisClient
}

// Enabled reports whether a Redis connection was initialized. The server
// runs without a result cache when REDIS_URL is unset.
func Enabled() bool {
	return redisClient != nil
}

// Close closes the Redis client connection
func Close() error {
	if redisClient != nil {
		log.Println("Closing Redis connection...")
		return redisClient.Close()
	}
	return nil
}

// StoreResult caches a serialized clustering result under its job id.
func StoreResult(id string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return redisClient.Set(ctx, resultKey(id), payload, ResultTTL).Err()
}

// LoadResult retrieves a cached clustering result by job id.
func LoadResult(id string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return redisClient.Get(ctx, resultKey(id)).Result()
}

// DeleteResult removes a cached clustering result.
func DeleteResult(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return redisClient.Del(ctx, resultKey(id)).Err()
}

func resultKey(id string) string {
	return "geocluster:result:" + id
}
