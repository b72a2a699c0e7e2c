package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo maps each collection onto a MongoDB collection of the same name,
// with the document id stored as _id.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri and pings the server before returning.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{coll: m.db.Collection(name)}
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) FindOne(ctx context.Context, id string) ([]byte, error) {
	var record bson.M
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", c.coll.Name(), id, err)
	}

	delete(record, "_id")
	doc, err := json.Marshal(plainValue(record))
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s/%s: %w", c.coll.Name(), id, err)
	}
	return doc, nil
}

func (c *mongoCollection) ReplaceOne(ctx context.Context, id string, doc []byte) error {
	record, err := toRecord(id, doc)
	if err != nil {
		return fmt.Errorf("failed to convert %s/%s: %w", c.coll.Name(), id, err)
	}

	_, err = c.coll.ReplaceOne(ctx, bson.M{"_id": id}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

// toRecord decodes doc as plain JSON and builds the stored record with id
// as _id. Keys shaped like extended JSON are kept as ordinary fields.
func toRecord(id string, doc []byte) (bson.D, error) {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	record := bson.D{{Key: "_id", Value: id}}
	for _, k := range keys {
		record = append(record, bson.E{Key: k, Value: fields[k]})
	}
	return record, nil
}

// plainValue converts decoded BSON containers back into the map and slice
// shapes encoding/json produces.
func plainValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return plainMap(t)
	case map[string]any:
		return plainMap(t)
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		return plainSlice(t)
	case []any:
		return plainSlice(t)
	default:
		return v
	}
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = plainValue(v)
	}
	return out
}
