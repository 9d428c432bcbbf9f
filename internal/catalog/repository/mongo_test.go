package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/askbook/askbook-api/internal/catalog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestBuildQuery_Empty(t *testing.T) {
	require.Equal(t, bson.D{}, BuildQuery(catalog.Filter{}))
}

func TestBuildQuery_ConjunctiveEquality(t *testing.T) {
	q := BuildQuery(catalog.Filter{Genre: "fantasy", Author: "X", Rating: "4.5"})
	require.Equal(t, bson.D{
		{Key: "rating", Value: bson.M{"$in": []interface{}{"4.5", 4.5}}},
		{Key: "genre", Value: "fantasy"},
		{Key: "author", Value: "X"},
	}, q)
}

func TestIDQuery(t *testing.T) {
	require.Equal(t, bson.M{"_id": "plain-id"}, idQuery("plain-id"))

	hex := "65a1f0c2b4d5e6f708192a3b"
	oid, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	require.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{hex, oid}}}, idQuery(hex))
}

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find sends the filter and decodes records", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "b1"}, {Key: "title", Value: "Dune"}, {Key: "rating", Value: 4.5}},
		))
		repo := NewMongoRepo(mt.Coll)

		books, err := repo.Find(context.Background(), catalog.Filter{Rating: "4.5", Genre: "scifi"})
		require.NoError(mt, err)
		require.Equal(mt, []catalog.Book{{"_id": "b1", "title": "Dune", "rating": 4.5}}, books)

		cmd := mt.GetStartedEvent().Command
		require.Equal(mt, "scifi", cmd.Lookup("filter", "genre").StringValue())
		in, err := cmd.Lookup("filter", "rating", "$in").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, in, 2)
		require.Equal(mt, "4.5", in[0].StringValue())
		require.Equal(mt, 4.5, in[1].Double())
	})

	mt.Run("find with no matches returns an empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		books, err := NewMongoRepo(mt.Coll).Find(context.Background(), catalog.Filter{})
		require.NoError(mt, err)
		require.Empty(mt, books)
	})

	mt.Run("get by object id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "title", Value: "Emma"}},
		))
		b, err := NewMongoRepo(mt.Coll).Get(context.Background(), oid.Hex())
		require.NoError(mt, err)
		require.Equal(mt, "Emma", b["title"])
		require.Equal(mt, oid, b["_id"])

		in, err := mt.GetStartedEvent().Command.Lookup("filter", "_id", "$in").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, in, 2)
		require.Equal(mt, oid.Hex(), in[0].StringValue())
		require.Equal(mt, oid, in[1].ObjectID())
	})

	mt.Run("get missing record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		_, err := NewMongoRepo(mt.Coll).Get(context.Background(), "nope")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("insert many", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		n, err := NewMongoRepo(mt.Coll).InsertMany(context.Background(), []catalog.Book{
			{"title": "A"}, {"title": "B"}, {"title": "C"},
		})
		require.NoError(mt, err)
		require.Equal(mt, 3, n)
	})

	mt.Run("insert many reports the applied prefix", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 2, Code: 11000, Message: "E11000 duplicate key error",
		}))
		n, err := NewMongoRepo(mt.Coll).InsertMany(context.Background(), []catalog.Book{
			{"title": "A"}, {"title": "B"}, {"title": "C"}, {"title": "D"},
		})
		require.Error(mt, err)
		require.True(mt, mongo.IsDuplicateKeyError(err))
		require.Equal(mt, 2, n)
	})
}

func TestInsertedBefore(t *testing.T) {
	require.Zero(t, insertedBefore(errors.New("network down")))
	require.Equal(t, 1, insertedBefore(mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{
		{WriteError: mongo.WriteError{Index: 3}},
		{WriteError: mongo.WriteError{Index: 1}},
	}}))
}
