package repository

import (
	"context"
	"errors"

	"github.com/askbook/askbook-api/internal/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo implements a MongoDB-backed catalog over the "books" collection.
// Records may carry string ids (imported data) or ObjectIDs (driver-generated).
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// BuildQuery translates a filter into a conjunctive equality query.
func BuildQuery(f catalog.Filter) bson.D {
	q := bson.D{}
	for _, p := range f.Predicates() {
		c := p.Candidates()
		if len(c) == 1 {
			q = append(q, bson.E{Key: p.Field, Value: c[0]})
			continue
		}
		q = append(q, bson.E{Key: p.Field, Value: bson.M{"$in": c}})
	}
	return q
}

func idQuery(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (m *MongoRepo) Find(ctx context.Context, f catalog.Filter) ([]catalog.Book, error) {
	cur, err := m.col.Find(ctx, BuildQuery(f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []catalog.Book{}
	for cur.Next(ctx) {
		var b catalog.Book
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (catalog.Book, error) {
	var b catalog.Book
	if err := m.col.FindOne(ctx, idQuery(id)).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// InsertMany performs an ordered insert. On failure it reports how many leading
// records were stored before the first rejected one.
func (m *MongoRepo) InsertMany(ctx context.Context, books []catalog.Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(books))
	for _, b := range books {
		docs = append(docs, bson.M(b))
	}
	res, err := m.col.InsertMany(ctx, docs)
	if err != nil {
		return insertedBefore(err), err
	}
	return len(res.InsertedIDs), nil
}

// insertedBefore returns the index of the first failed write of an ordered insert,
// which equals the number of documents that were applied.
func insertedBefore(err error) int {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return 0
	}
	first := bwe.WriteErrors[0].Index
	for _, we := range bwe.WriteErrors[1:] {
		if we.Index < first {
			first = we.Index
		}
	}
	return first
}
