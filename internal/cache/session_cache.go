package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"wellcheck/internal/model"

	"github.com/redis/go-redis/v9"
)

const maxUpdateRetries = 10

var ErrUpdateConflict = errors.New("session changed concurrently, too many retries")

// SessionCache holds in-progress assessment sessions until they expire
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	// Update applies fn to the stored session and writes it back atomically.
	// It returns nil, nil without calling fn when the session does not exist.
	// An error from fn aborts the write and is returned unchanged.
	Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache whose entries live for ttl after the last write
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return "assessment:" + id
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update runs fn under WATCH; a write by anyone else between the read and
// EXEC fails the transaction and fn runs again on the fresh value.
func (c *sessionCache) Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	key := c.key(id)
	var updated *model.Session

	txf := func(tx *redis.Tx) error {
		updated = nil
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}

		var session model.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return err
		}
		if err := fn(&session); err != nil {
			return err
		}
		out, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &session
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := c.client.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrUpdateConflict
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
