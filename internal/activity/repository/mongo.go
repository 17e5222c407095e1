package repository

import (
	"context"
	"errors"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements the activity store on a MongoDB collection.
// Activity ids are stored as _id, which gives global uniqueness for free;
// userId acts as the partition key and is part of every point filter.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// EnsureIndexes creates the {userId, timestamp desc} index backing both
// listing and summary queries. Safe to call on every start.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}}
	_, err := m.col.Indexes().CreateOne(ctx, idx)
	return err
}

func (m *MongoRepo) Insert(ctx context.Context, a *activity.Activity) error {
	if _, err := m.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (m *MongoRepo) ListByUser(ctx context.Context, userID string) ([]*activity.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: 1}})
	return m.find(ctx, bson.M{"userId": userID}, opts)
}

func (m *MongoRepo) Query(ctx context.Context, f activity.Filter) ([]*activity.Activity, error) {
	return m.find(ctx, filterDocument(f))
}

func (m *MongoRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*activity.Activity, error) {
	cur, err := m.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []*activity.Activity{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id, userID string) (*activity.Activity, error) {
	var a activity.Activity
	if err := m.col.FindOne(ctx, pointFilter(id, userID)).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (m *MongoRepo) Replace(ctx context.Context, a *activity.Activity) error {
	res, err := m.col.ReplaceOne(ctx, pointFilter(a.ID, a.UserID), a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := m.col.DeleteOne(ctx, pointFilter(id, userID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

func pointFilter(id, userID string) bson.M {
	return bson.M{"_id": id, "userId": userID}
}

// filterDocument translates a summary filter. Timestamps are fixed-width UTC
// strings, so string range operators select the right time window.
func filterDocument(f activity.Filter) bson.M {
	q := bson.M{
		"userId":    f.UserID,
		"timestamp": bson.M{"$gte": f.From, "$lte": f.To},
	}
	if f.Type != "" {
		q["type"] = f.Type
	}
	return q
}
