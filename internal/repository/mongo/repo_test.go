package mongo

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoExerciseRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "coachy.exercises"

	mt.Run("get by id", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "2"},
			{Key: "name", Value: "Squat"},
			{Key: "primaryMuscles", Value: bson.A{"Quadriceps"}},
			{Key: "source", Value: "predefined"},
		}))

		ex, err := repo.GetByID(context.Background(), "2")
		require.NoError(mt, err)
		assert.Equal(mt, "Squat", ex.Name)
		assert.Equal(mt, []domain.MuscleGroup{domain.MuscleQuadriceps}, ex.PrimaryMuscles)
		assert.Equal(mt, domain.SourcePredefined, ex.Source)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("list all", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{{Key: "_id", Value: "1"}, {Key: "name", Value: "Bench Press"}})
		second := mtest.CreateCursorResponse(1, ns, mtest.NextBatch, bson.D{{Key: "_id", Value: "2"}, {Key: "name", Value: "Squat"}})
		done := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, second, done)

		list, err := repo.ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "Bench Press", list[0].Name)
		assert.Equal(mt, "Squat", list[1].Name)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ex := &domain.Exercise{Name: "Cable Fly", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleChest}}
		id, err := repo.Create(context.Background(), ex)
		require.NoError(mt, err)
		assert.NotEmpty(mt, id)
		assert.Equal(mt, id, ex.ID)
		assert.False(mt, ex.CreatedAt.IsZero())
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &domain.Exercise{
			ID:             "1",
			Name:           "Bench Press",
			PrimaryMuscles: []domain.MuscleGroup{domain.MuscleChest},
		})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), &domain.Exercise{ID: "missing", Name: "x"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("indexes match the list sort", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, EnsureExerciseIndexes(context.Background(), mt.Coll))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "createIndexes", started.CommandName)
		cmd := started.Command.String()
		assert.Contains(mt, cmd, "exercise_catalog_order")
		assert.Contains(mt, cmd, `"createdAt"`)
		assert.NotContains(mt, cmd, "text")
	})

	mt.Run("update requires id", func(mt *mtest.T) {
		repo := &mongoExerciseRepository{collection: mt.Coll}
		assert.Error(mt, repo.Update(context.Background(), &domain.Exercise{Name: "x"}))
	})
}

func TestMongoPreferenceStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "coachy.preferences"

	mt.Run("get", func(mt *mtest.T) {
		store := &mongoPreferenceStore{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "owner", Value: "u1"},
			{Key: "key", Value: "app_theme_preference"},
			{Key: "value", Value: "dark"},
		}))

		v, err := store.Get(context.Background(), "u1", "app_theme_preference")
		require.NoError(mt, err)
		assert.Equal(mt, "dark", v)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		store := &mongoPreferenceStore{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.Get(context.Background(), "u1", "app_theme_preference")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("set and delete", func(mt *mtest.T) {
		store := &mongoPreferenceStore{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		require.NoError(mt, store.Set(context.Background(), "u1", "app_guest_mode", "true"))
		require.NoError(mt, store.Delete(context.Background(), "u1", "app_guest_mode"))
	})
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create lower-cases email", func(mt *mtest.T) {
		repo := &mongoUserRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &domain.User{Email: "Ann@Example.com", PasswordHash: "hash", Role: domain.RoleMember}
		id, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		assert.NotEmpty(mt, id)
		assert.Equal(mt, "ann@example.com", user.Email)
	})

	mt.Run("get by email missing", func(mt *mtest.T) {
		repo := &mongoUserRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coachy.users", mtest.FirstBatch))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}
