package mongo

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// ListAll returns every exercise, oldest first. Seeded entries have increasing
// createdAt values, so this is catalog order.
func (r *mongoExerciseRepository) ListAll(ctx context.Context) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// Create inserts a new exercise. An empty ID gets a fresh UUID.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || len(exercise.PrimaryMuscles) == 0 {
		return "", errors.New("exercise name and primary muscles are required")
	}

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return exercise.ID, nil
}

// Update modifies the editable fields of an exercise.
// Source, createdBy and createdAt are never touched here.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		return errors.New("exercise ID is required for update")
	}
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}

	exercise.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":             exercise.Name,
			"description":      exercise.Description,
			"primaryMuscles":   exercise.PrimaryMuscles,
			"secondaryMuscles": exercise.SecondaryMuscles,
			"bodyParts":        exercise.BodyParts,
			"variationOf":      exercise.VariationOf,
			"mediaKey":         exercise.MediaKey,
			"updatedAt":        exercise.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SeedExercises inserts the given catalog when the collection is empty.
func SeedExercises(ctx context.Context, db *mongo.Database, exercises []domain.Exercise) (int, error) {
	collection := db.Collection(exerciseCollectionName)

	count, err := collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(exercises))
	for i := range exercises {
		docs[i] = exercises[i]
	}
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("seed exercises: %w", err)
	}
	return len(docs), nil
}

// EnsureExerciseIndexes backs the ListAll sort. Filtering happens in memory,
// so no other field is indexed.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("exercise_catalog_order"),
	})
	return err
}
