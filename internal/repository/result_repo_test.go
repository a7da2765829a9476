package repository

import (
	"context"
	"testing"
	"wellcheck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestResultRepoSave(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the stored id on insert and on update", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		oid := primitive.NewObjectID()
		stored := bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: oid}}}

		// first submit inserts, the retry matches the same document
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(stored),
			mtest.CreateSuccessResponse(stored),
		)

		first := &model.Assessment{SessionID: "s1"}
		id, err := repo.Save(context.Background(), first)
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), id)
		assert.Equal(mt, oid.Hex(), first.ID)

		retry := &model.Assessment{SessionID: "s1"}
		id, err = repo.Save(context.Background(), retry)
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), id)
		assert.Equal(mt, oid.Hex(), retry.ID)
	})

	mt.Run("surfaces write errors", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key",
			Name:    "DuplicateKey",
		}))

		a := &model.Assessment{SessionID: "s1"}
		_, err := repo.Save(context.Background(), a)
		assert.Error(mt, err)
		assert.Empty(mt, a.ID)
	})
}

func TestResultRepoGetBySessionID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "wellcheck.assessments"

	mt.Run("found", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "sessionId", Value: "s1"},
			{Key: "catalogName", Value: "wellness-v1"},
			{Key: "report", Value: bson.D{{Key: "overall", Value: bson.D{{Key: "score", Value: 6.5}}}}},
		}))

		a, err := repo.GetBySessionID(context.Background(), "s1")
		require.NoError(mt, err)
		require.NotNil(mt, a)
		assert.Equal(mt, oid.Hex(), a.ID)
		assert.Equal(mt, "s1", a.SessionID)
		assert.Equal(mt, 6.5, a.Report.Overall.Score)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		a, err := repo.GetBySessionID(context.Background(), "nope")
		require.NoError(mt, err)
		assert.Nil(mt, a)
	})
}

func TestResultRepoListRecent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes every document", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "wellcheck.assessments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "sessionId", Value: "b"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "sessionId", Value: "a"}},
		))

		list, err := repo.ListRecent(context.Background(), 5)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "b", list[0].SessionID)
		assert.Equal(mt, "a", list[1].SessionID)
	})
}
