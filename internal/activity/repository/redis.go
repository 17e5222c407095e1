package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
	"github.com/redis/go-redis/v9"
)

// RedisRepo implements the activity store on Redis.
// Each activity is stored as JSON under "<prefix>activity:<id>" and indexed in
// the sorted set "<prefix>user:<userId>:activities", scored by timestamp in
// unix microseconds.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed activity store. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "fitlog:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) docKey(id string) string {
	return r.prefix + "activity:" + id
}

func (r *RedisRepo) userKey(userID string) string {
	return r.prefix + "user:" + userID + ":activities"
}

func score(ts string) (float64, error) {
	t, err := activity.ParseTime(ts)
	if err != nil {
		return 0, fmt.Errorf("activity timestamp: %w", err)
	}
	return float64(t.UnixMicro()), nil
}

func (r *RedisRepo) Insert(ctx context.Context, a *activity.Activity) error {
	sc, err := score(a.Timestamp)
	if err != nil {
		return err
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.docKey(a.ID), b, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}
	return r.client.ZAdd(ctx, r.userKey(a.UserID), redis.Z{Score: sc, Member: a.ID}).Err()
}

func (r *RedisRepo) ListByUser(ctx context.Context, userID string) ([]*activity.Activity, error) {
	ids, err := r.client.ZRevRange(ctx, r.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *RedisRepo) Query(ctx context.Context, f activity.Filter) ([]*activity.Activity, error) {
	from, err := score(f.From)
	if err != nil {
		return nil, err
	}
	to, err := score(f.To)
	if err != nil {
		return nil, err
	}
	ids, err := r.client.ZRangeByScore(ctx, r.userKey(f.UserID), &redis.ZRangeBy{
		Min: strconv.FormatFloat(from, 'f', 0, 64),
		Max: strconv.FormatFloat(to, 'f', 0, 64),
	}).Result()
	if err != nil {
		return nil, err
	}
	list, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for _, a := range list {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// load fetches documents by id. Ids whose document is gone are skipped.
func (r *RedisRepo) load(ctx context.Context, ids []string) ([]*activity.Activity, error) {
	out := []*activity.Activity{}
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var a activity.Activity
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, nil
}

func (r *RedisRepo) Get(ctx context.Context, id, userID string) (*activity.Activity, error) {
	b, err := r.client.Get(ctx, r.docKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var a activity.Activity
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *RedisRepo) Replace(ctx context.Context, a *activity.Activity) error {
	if _, err := r.Get(ctx, a.ID, a.UserID); err != nil {
		return err
	}
	sc, err := score(a.Timestamp)
	if err != nil {
		return err
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.docKey(a.ID), b, 0)
		pipe.ZAdd(ctx, r.userKey(a.UserID), redis.Z{Score: sc, Member: a.ID})
		return nil
	})
	return err
}

func (r *RedisRepo) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.Get(ctx, id, userID); err != nil {
		return err
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.docKey(id))
		pipe.ZRem(ctx, r.userKey(userID), id)
		return nil
	})
	return err
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
