package redis

import (
	"context"
	"net"

	goredis "github.com/redis/go-redis/v9"
)

// RedisAdapter represents the redis storage adapter; records are redis hashes
type RedisAdapter struct {
	client *goredis.Client
}

// RedisOptionFunc describes functions which add optional connection settings to Redis
type RedisOptionFunc func(options *goredis.Options)

// WithPassword is an optional function to provide a password to connect to redis with; default is empty
func WithPassword(password string) RedisOptionFunc {
	return func(options *goredis.Options) {
		options.Password = password
	}
}

// WithUsername is an optional function to provide an ACL user name; default is the redis default user
func WithUsername(username string) RedisOptionFunc {
	return func(options *goredis.Options) {
		options.Username = username
	}
}

// WithDB is an optional function to select a logical database; default is 0
func WithDB(db int) RedisOptionFunc {
	return func(options *goredis.Options) {
		options.DB = db
	}
}

// NewAdapter instantiates a new RedisAdapter and checks the server answers
func NewAdapter(ctx context.Context, host string, port string, redisOpts ...RedisOptionFunc) (*RedisAdapter, error) {
	options := &goredis.Options{Addr: net.JoinHostPort(host, port)}
	for _, redisOpt := range redisOpts {
		redisOpt(options)
	}

	client := goredis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisAdapter{client: client}, nil
}

// Exists reports whether key is present
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := a.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// SetRecord writes all fields of record with one HSET
func (a *RedisAdapter) SetRecord(ctx context.Context, key string, record map[string]string) error {
	values := make([]interface{}, 0, 2*len(record))
	for field, value := range record {
		values = append(values, field, value)
	}

	return a.client.HSet(ctx, key, values...).Err()
}

// GetRecord returns the hash stored under key
func (a *RedisAdapter) GetRecord(ctx context.Context, key string) (map[string]string, error) {
	return a.client.HGetAll(ctx, key).Result()
}

// FieldNames returns the hash field names stored under key
func (a *RedisAdapter) FieldNames(ctx context.Context, key string) ([]string, error) {
	return a.client.HKeys(ctx, key).Result()
}

// DeleteFields removes fields from the hash stored under key
func (a *RedisAdapter) DeleteFields(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	return a.client.HDel(ctx, key, fields...).Err()
}

// Ping checks the connection
func (a *RedisAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (a *RedisAdapter) Close() error {
	return a.client.Close()
}
