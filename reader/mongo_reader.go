package reader

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ragsynth/go-ragsynth/schema"
)

// DefaultMaxDocs caps how many documents a mongo load returns.
const DefaultMaxDocs = 1000

// MongoReader loads documents from a MongoDB collection. Each source
// document must carry a "text" field; its value becomes the document
// text.
type MongoReader struct {
	DBName     string
	Collection string
	// Filter selects documents; nil loads everything.
	Filter bson.M
	// MaxDocs caps the number of loaded documents.
	MaxDocs int64

	client *mongo.Client
}

// MongoOption configures a MongoReader.
type MongoOption func(*MongoReader)

// WithMongoFilter sets the query filter.
func WithMongoFilter(filter bson.M) MongoOption {
	return func(r *MongoReader) {
		r.Filter = filter
	}
}

// WithMongoMaxDocs caps the number of loaded documents.
func WithMongoMaxDocs(n int64) MongoOption {
	return func(r *MongoReader) {
		r.MaxDocs = n
	}
}

// NewMongoReader connects to MongoDB by URI and targets a collection.
// Either uri, or host and port through NewMongoReaderFromHost, must be
// given.
func NewMongoReader(ctx context.Context, uri, dbName, collection string, opts ...MongoOption) (*MongoReader, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo reader: uri must not be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, NewReaderError(uri, "failed to connect", err)
	}
	return newMongoReader(client, dbName, collection, opts...)
}

// NewMongoReaderFromHost connects to MongoDB by host and port.
func NewMongoReaderFromHost(ctx context.Context, host string, port int, dbName, collection string, opts ...MongoOption) (*MongoReader, error) {
	if host == "" || port <= 0 {
		return nil, fmt.Errorf("mongo reader: host and port must both be set")
	}
	uri := fmt.Sprintf("mongodb://%s:%d", host, port)
	return NewMongoReader(ctx, uri, dbName, collection, opts...)
}

func newMongoReader(client *mongo.Client, dbName, collection string, opts ...MongoOption) (*MongoReader, error) {
	if dbName == "" || collection == "" {
		return nil, fmt.Errorf("mongo reader: db name and collection must both be set")
	}

	r := &MongoReader{
		DBName:     dbName,
		Collection: collection,
		MaxDocs:    DefaultMaxDocs,
		client:     client,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// LoadData reads documents from the collection, up to MaxDocs.
func (r *MongoReader) LoadData(ctx context.Context) ([]schema.Document, error) {
	coll := r.client.Database(r.DBName).Collection(r.Collection)

	filter := r.Filter
	if filter == nil {
		filter = bson.M{}
	}

	findOpts := options.Find()
	if r.MaxDocs > 0 {
		findOpts.SetLimit(r.MaxDocs)
	}

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, NewReaderError(r.source(), "find failed", err)
	}
	defer cursor.Close(ctx)

	var docs []schema.Document
	for cursor.Next(ctx) {
		var item bson.M
		if err := cursor.Decode(&item); err != nil {
			return nil, NewReaderError(r.source(), "decode failed", err)
		}

		doc, err := documentFromRecord(item)
		if err != nil {
			return nil, NewReaderError(r.source(), "invalid document", err)
		}
		docs = append(docs, *doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, NewReaderError(r.source(), "cursor failed", err)
	}
	return docs, nil
}

// Close disconnects the underlying client.
func (r *MongoReader) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoReader) source() string {
	return r.DBName + "." + r.Collection
}

// documentFromRecord converts a mongo record into a document. The
// record must carry a string "text" field.
func documentFromRecord(item bson.M) (*schema.Document, error) {
	raw, ok := item["text"]
	if !ok {
		return nil, fmt.Errorf("`text` field not found")
	}
	text, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("`text` field is %T, want string", raw)
	}

	doc := schema.NewDocument(text)
	if id, ok := item["_id"]; ok {
		doc.Metadata["source_id"] = fmt.Sprint(id)
	}
	return doc, nil
}

var _ Reader = (*MongoReader)(nil)
