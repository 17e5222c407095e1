package repository

import (
	"context"
	"testing"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func activityDoc(id, userID, typ, ts string, minutes, calories int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: userID},
		{Key: "type", Value: typ},
		{Key: "durationMinutes", Value: int32(minutes)},
		{Key: "calories", Value: int32(calories)},
		{Key: "notes", Value: ""},
		{Key: "timestamp", Value: ts},
		{Key: "createdAt", Value: ts},
	}
}

func TestMongoRepo(t *testing.T) {
	ctx := context.Background()
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepo(mt.Coll)
		require.NoError(mt, repo.Insert(ctx, sample("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 30)))
	})

	mt.Run("insert duplicate id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))
		repo := NewMongoRepo(mt.Coll)
		err := repo.Insert(ctx, sample("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 30))
		require.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("get", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			activityDoc("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 30, 367)))
		repo := NewMongoRepo(mt.Coll)
		got, err := repo.Get(ctx, "a1", "u1")
		require.NoError(mt, err)
		require.Equal(mt, "a1", got.ID)
		require.Equal(mt, 30, got.DurationMinutes)
		require.Equal(mt, 367, got.Calories)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewMongoRepo(mt.Coll)
		_, err := repo.Get(ctx, "a1", "u1")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			activityDoc("a2", "u1", "walk", "2025-08-22T07:00:00.000000Z", 20, 98),
			activityDoc("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 30, 367)))
		repo := NewMongoRepo(mt.Coll)
		list, err := repo.ListByUser(ctx, "u1")
		require.NoError(mt, err)
		require.Equal(mt, []string{"a2", "a1"}, ids(list))
	})

	mt.Run("query error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))
		repo := NewMongoRepo(mt.Coll)
		_, err := repo.Query(ctx, activity.Filter{UserID: "u1"})
		require.Error(mt, err)
	})

	mt.Run("replace", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := NewMongoRepo(mt.Coll)
		require.NoError(mt, repo.Replace(ctx, sample("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 45)))
	})

	mt.Run("replace missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := NewMongoRepo(mt.Coll)
		err := repo.Replace(ctx, sample("a1", "u1", "run", "2025-08-20T07:00:00.000000Z", 45))
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewMongoRepo(mt.Coll)
		require.NoError(mt, repo.Delete(ctx, "a1", "u1"))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewMongoRepo(mt.Coll)
		require.ErrorIs(mt, repo.Delete(ctx, "abc", "u1"), ErrNotFound)
	})
}

func TestFilterDocument(t *testing.T) {
	f := activity.Filter{UserID: "u1", From: "2025-08-01T00:00:00.000000Z", To: "2025-08-08T00:00:00.000000Z"}
	q := filterDocument(f)
	require.Equal(t, bson.M{
		"userId":    "u1",
		"timestamp": bson.M{"$gte": f.From, "$lte": f.To},
	}, q)

	f.Type = "swim"
	q = filterDocument(f)
	require.Equal(t, "swim", q["type"])
}
