package repository

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newMiniredisRepo(t *testing.T) (*RedisRepo, *mr.Miniredis) {
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepo(client, "test:"), m
}

func TestRedisRepo(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store {
		r, _ := newMiniredisRepo(t)
		return r
	})
}

func TestRedisRepo_Keys(t *testing.T) {
	ctx := context.Background()
	r, m := newMiniredisRepo(t)
	require.NoError(t, r.Insert(ctx, sample("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 30)))

	require.True(t, m.Exists("test:activity:a1"))
	members, err := m.ZMembers("test:user:u1:activities")
	require.NoError(t, err)
	require.Equal(t, []string{"a1"}, members)

	require.NoError(t, r.Delete(ctx, "a1", "u1"))
	require.False(t, m.Exists("test:activity:a1"))
}

func TestRedisRepo_SkipsDanglingIndexEntries(t *testing.T) {
	ctx := context.Background()
	r, m := newMiniredisRepo(t)
	require.NoError(t, r.Insert(ctx, sample("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 30)))
	require.NoError(t, r.Insert(ctx, sample("a2", "u1", "walk", "2025-08-21T07:00:00.000000Z", 20)))
	m.Del("test:activity:a1")

	list, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"a2"}, ids(list))
}

func TestRedisRepo_DefaultPrefix(t *testing.T) {
	r := NewRedisRepo(nil, "")
	require.Equal(t, "fitlog:activity:x", r.docKey("x"))
	require.Equal(t, "fitlog:user:u:activities", r.userKey("u"))
}
