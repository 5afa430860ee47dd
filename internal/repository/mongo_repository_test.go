package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/spec-kit/bloglist/internal/domain"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

func TestMongoBlogRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by id decodes the document", func(mt *mtest.T) {
		repo := NewMongoBlogRepository(mt.Coll)
		oid := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bloglist.blogs", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Go Proverbs"},
			{Key: "author", Value: "R. Pike"},
			{Key: "url", Value: "https://go-proverbs.github.io/"},
			{Key: "likes", Value: 5},
			{Key: "user", Value: owner},
		}))

		blog, err := repo.GetByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), blog.ID)
		assert.Equal(mt, 5, blog.Likes)
		assert.Equal(mt, owner.Hex(), blog.UserID)
	})

	mt.Run("get by id with a bad id is a cast failure", func(mt *mtest.T) {
		repo := NewMongoBlogRepository(mt.Coll)
		_, err := repo.GetByID(context.Background(), "invalid_id")
		assert.Equal(mt, apperrors.KindMalformattedID, apperrors.KindOf(err))
	})

	mt.Run("get by id with no match is not found", func(mt *mtest.T) {
		repo := NewMongoBlogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bloglist.blogs", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.Equal(mt, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	mt.Run("update of a missing post is not found", func(mt *mtest.T) {
		repo := NewMongoBlogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Update(context.Background(), &domain.Blog{ID: primitive.NewObjectID().Hex(), Title: "t", URL: "u"})
		assert.Equal(mt, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	mt.Run("delete of a missing post is not found", func(mt *mtest.T) {
		repo := NewMongoBlogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.Equal(mt, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	mt.Run("create assigns the inserted id", func(mt *mtest.T) {
		repo := NewMongoBlogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		blog := &domain.Blog{Title: "t", URL: "u", UserID: primitive.NewObjectID().Hex()}
		require.NoError(mt, repo.Create(context.Background(), blog))
		_, err := primitive.ObjectIDFromHex(blog.ID)
		assert.NoError(mt, err)
	})
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate username carries the field", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: bloglist.users index: username_1",
		}))

		err := repo.Create(context.Background(), &domain.User{Username: "root", PasswordHash: "hash"})
		failure := apperrors.ToFailure(err)
		require.NotNil(mt, failure)
		assert.Equal(mt, apperrors.KindDuplicateKey, failure.Kind)
		assert.Equal(mt, "username", failure.Field)
	})

	mt.Run("attach blog to a missing user is not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.AttachBlog(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
		assert.Equal(mt, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	mt.Run("get by username decodes blogs", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		uid := primitive.NewObjectID()
		bid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bloglist.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: uid},
			{Key: "username", Value: "root"},
			{Key: "passwordHash", Value: "hash"},
			{Key: "blogs", Value: bson.A{bid}},
		}))

		user, err := repo.GetByUsername(context.Background(), "root")
		require.NoError(mt, err)
		assert.Equal(mt, uid.Hex(), user.ID)
		assert.Equal(mt, []string{bid.Hex()}, user.Blogs)
	})
}
