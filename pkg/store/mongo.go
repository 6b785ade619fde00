package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/florelab/bloomforge/pkg/design"
	"github.com/florelab/bloomforge/pkg/errors"
)

// MongoConfig configures the MongoDB-backed store.
type MongoConfig struct {
	// URI is the connection string, e.g. mongodb://localhost:27017.
	URI string

	// Database and Collection default to "bloomforge" and "designs".
	Database   string
	Collection string

	// ConnectTimeout bounds the initial connection. Defaults to 10s.
	ConnectTimeout time.Duration
}

// MongoStore persists designs in a MongoDB collection, one document per
// design keyed by its ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = "bloomforge"
	}
	if cfg.Collection == "" {
		cfg.Collection = "designs"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts the design document.
func (s *MongoStore) Save(ctx context.Context, d *design.Design) error {
	if err := errors.ValidateDesignID(d.ID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": d.ID}, d,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save design %s", d.ID)
	}
	return nil
}

// Get retrieves a design by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*design.Design, error) {
	if err := errors.ValidateDesignID(id); err != nil {
		return nil, err
	}
	var d design.Design
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "design %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "get design %s", id)
	}
	return &d, nil
}

// List returns design summaries, newest first. The geometry fields are
// projected away server-side; counts come from stored array lengths.
func (s *MongoStore) List(ctx context.Context, limit int) ([]design.Stats, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "created_at", Value: 1},
			{Key: "seeds", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$field.seeds", bson.A{}}}}}}},
			{Key: "petal_ends", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$field.petal_ends", bson.A{}}}}}}},
			{Key: "vertices", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$mesh.vertices", bson.A{}}}}}}},
			{Key: "triangles", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$mesh.faces", bson.A{}}}}}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list designs")
	}
	defer cursor.Close(ctx)

	var stats []design.Stats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode design list")
	}
	return stats, nil
}

// Delete removes a design.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateDesignID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete design %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDesignNotFound, "design %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
