package httpcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates no entry exists for a key.
var ErrCacheMiss = errors.New("httpcache: cache miss")

// Store persists raw responses by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// FileStore keeps one file per key under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("httpcache: creating %s: %w", dir, err)
	}

	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key)
}

// Get reads the entry for key, or returns ErrCacheMiss.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	content, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	return content, nil
}

// Put writes the entry through a temporary file so readers never see a
// partial response.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	f, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err = f.Write(value); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, s.path(key))
}

// RedisStore keeps entries in Redis under Prefix+key.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration // 0 means no expiry
}

// NewRedisStore opens a client for addr. The connection is checked with PING.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("httpcache: redis %s: %w", addr, err)
	}

	return &RedisStore{Client: c, Prefix: "portfolios:http:", TTL: ttl}, nil
}

// Get reads the entry for key, or returns ErrCacheMiss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}

	return v, err
}

// Put stores value with the configured TTL.
func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return s.Client.Set(ctx, s.Prefix+key, value, s.TTL).Err()
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error { return s.Client.Close() }
