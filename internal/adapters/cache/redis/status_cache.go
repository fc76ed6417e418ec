package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-boarding/internal/domain/reservations"
	"pet-boarding/internal/platform/logger"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "reservations:statuses:"

// StatusCache envuelve un StatusRepository con lectura a través de Redis.
// Solo cachea aciertos; cualquier error de Redis cae al repo de abajo.
type StatusCache struct {
	next   reservations.StatusRepository
	client *goredis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
}

func NewStatusCache(next reservations.StatusRepository, client *goredis.Client, ttl time.Duration, log logger.Logger) *StatusCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StatusCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *StatusCache) List(ctx context.Context) ([]reservations.Status, error) {
	var cached []reservations.Status
	if c.load(ctx, listKey(), &cached) {
		return cached, nil
	}

	items, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, listKey(), items)
	return items, nil
}

func (c *StatusCache) GetByID(ctx context.Context, id string) (reservations.Status, error) {
	var cached reservations.Status
	if c.load(ctx, idKey(id), &cached) {
		return cached, nil
	}

	st, err := c.next.GetByID(ctx, id)
	if err != nil {
		return reservations.Status{}, err
	}
	c.store(ctx, idKey(id), st)
	return st, nil
}

func (c *StatusCache) GetByName(ctx context.Context, name string) (reservations.Status, error) {
	var cached reservations.Status
	if c.load(ctx, nameKey(name), &cached) {
		return cached, nil
	}

	st, err := c.next.GetByName(ctx, name)
	if err != nil {
		return reservations.Status{}, err
	}
	c.store(ctx, nameKey(name), st)
	return st, nil
}

// Create escribe en el repo y descarta el listado cacheado.
func (c *StatusCache) Create(ctx context.Context, st reservations.Status) error {
	if err := c.next.Create(ctx, st); err != nil {
		return err
	}
	if err := c.client.Del(ctx, listKey()).Err(); err != nil {
		c.warn(ctx, "status cache invalidate failed", err)
	}
	return nil
}

func (c *StatusCache) load(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.warn(ctx, "status cache read failed", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.warn(ctx, "status cache decode failed", err)
		return false
	}
	return true
}

func (c *StatusCache) store(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.warn(ctx, "status cache write failed", err)
	}
}

func (c *StatusCache) warn(ctx context.Context, msg string, err error) {
	logger.FromContext(ctx, c.log).Warn(msg, map[string]any{"error": err})
}

func listKey() string { return keyPrefix + "all" }

func idKey(id string) string { return keyPrefix + "id:" + strings.TrimSpace(id) }

func nameKey(name string) string {
	return keyPrefix + "name:" + strings.ToLower(strings.TrimSpace(name))
}
