package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// mongoUnauthorized is the server error code for a rejected operation.
const mongoUnauthorized = 13

type MongoStore struct {
	client       *mongo.Client
	db           *mongo.Database
	log          *zap.Logger
	pollInterval time.Duration
}

func NewMongoStore(client *mongo.Client, dbName string, log *zap.Logger, pollInterval time.Duration) *MongoStore {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &MongoStore{
		client:       client,
		db:           client.Database(dbName),
		log:          log,
		pollInterval: pollInterval,
	}
}

func (s *MongoStore) classify(err error, op, collection, id string, data interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(mongoUnauthorized) {
		return &PermissionError{Path: path(collection, id), Operation: op, Data: data, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, path(collection, id), err)
}

func (s *MongoStore) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := primitive.NewObjectID().Hex()
	m["_id"] = id

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", s.classify(err, OpCreate, collection, "", doc)
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" || k == "id" {
			continue
		}
		set[k] = v
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return s.classify(err, OpUpdate, collection, id, fields)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return s.classify(err, OpDelete, collection, id, nil)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	return s.classify(err, OpGet, collection, id, nil)
}

func (s *MongoStore) findOptions(q Query) *options.FindOptions {
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

func (s *MongoStore) List(ctx context.Context, q Query, out interface{}) error {
	cursor, err := s.db.Collection(q.Collection).Find(ctx, bson.M{}, s.findOptions(q))
	if err != nil {
		return s.classify(err, OpList, q.Collection, "", nil)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return s.classify(err, OpList, q.Collection, "", nil)
	}
	return nil
}

func (s *MongoStore) snapshot(ctx context.Context, q Query) (Snapshot, error) {
	var docs []bson.Raw
	if err := s.List(ctx, q, &docs); err != nil {
		return Snapshot{}, err
	}
	wrapped, err := bson.Marshal(bson.M{"items": docs})
	if err != nil {
		return Snapshot{}, err
	}
	items := bson.Raw(wrapped).Lookup("items")
	return Snapshot{
		Collection: q.Collection,
		Size:       len(docs),
		ReadAt:     time.Now(),
		decode:     items.Unmarshal,
	}, nil
}

// Subscribe follows the collection's change stream. Standalone servers do
// not support change streams, so it falls back to polling. The stream is
// opened before the first snapshot is read so no write falls in between.
func (s *MongoStore) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	stream, watchErr := s.db.Collection(q.Collection).Watch(ctx, mongo.Pipeline{})

	first, err := s.snapshot(ctx, q)
	if err != nil {
		if stream != nil {
			stream.Close(context.Background())
		}
		return nil, err
	}
	ch := make(chan Snapshot, 1)
	ch <- first

	go func() {
		defer close(ch)

		if watchErr != nil {
			s.log.Warn("Change stream unavailable, polling instead",
				zap.String("collection", q.Collection),
				zap.Duration("interval", s.pollInterval),
				zap.Error(watchErr))
			s.poll(ctx, q, ch)
			return
		}
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			snap, err := s.snapshot(ctx, q)
			if err != nil {
				s.log.Error("Failed to refresh snapshot", zap.String("collection", q.Collection), zap.Error(err))
				continue
			}
			publish(ch, snap)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			s.log.Error("Change stream ended", zap.String("collection", q.Collection), zap.Error(err))
		}
	}()
	return ch, nil
}

func (s *MongoStore) poll(ctx context.Context, q Query, ch chan Snapshot) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, err := s.snapshot(ctx, q)
			if err != nil {
				s.log.Error("Failed to poll collection", zap.String("collection", q.Collection), zap.Error(err))
				continue
			}
			publish(ch, snap)
		}
	}
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error closing database connection: %w", err)
	}
	s.log.Info("MongoDB connection closed")
	return nil
}
