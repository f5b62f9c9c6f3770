package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sheetstore/domain/core"
	"sheetstore/ports"
)

// Store implements ports.DocumentStore on a MongoDB collection. Document
// identities map to _id, so MongoDB arbitrates write ordering per id.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials MongoDB, verifies the connection with a ping, and returns
// a store bound to the given database and collection.
func Connect(uri, dbName, collName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("[mongo] connected to %s (db=%s collection=%s)", uri, dbName, collName)
	return &Store{
		client: client,
		coll:   client.Database(dbName).Collection(collName),
	}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (ports.Document, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, core.NewNotFoundError("document", id)
	}
	if err != nil {
		return nil, core.NewStorageError("get", err)
	}
	delete(doc, "_id")
	return normalizeDoc(doc), nil
}

func (s *Store) Set(ctx context.Context, id string, doc ports.Document) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, bson.M(doc), opts); err != nil {
		return core.NewStorageError("set", err)
	}
	return nil
}

func (s *Store) Merge(ctx context.Context, id string, fields, defaults ports.Document) error {
	update := bson.M{"$set": bson.M(fields)}
	if len(defaults) > 0 {
		update["$setOnInsert"] = bson.M(defaults)
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update, opts); err != nil {
		return core.NewStorageError("merge", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	// No existence check: deleting an absent id reports success.
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return core.NewStorageError("delete", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context) ([]ports.Stored, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, core.NewStorageError("query", err)
	}
	defer cursor.Close(ctx)

	var out []ports.Stored
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, core.NewStorageError("query", err)
		}
		id, _ := doc["_id"].(string)
		delete(doc, "_id")
		out = append(out, ports.Stored{ID: id, Doc: normalizeDoc(doc)})
	}
	if err := cursor.Err(); err != nil {
		return nil, core.NewStorageError("query", err)
	}
	return out, nil
}

// normalizeDoc rewrites bson container and scalar types into the plain Go
// values the port promises, so upper layers never see driver types.
func normalizeDoc(doc bson.M) ports.Document {
	out := make(ports.Document, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalizeDoc(t)
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case primitive.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return normalizeDoc(m)
	case primitive.DateTime:
		return t.Time().UTC()
	case int32:
		return int(t)
	case int64:
		return int(t)
	default:
		return v
	}
}
