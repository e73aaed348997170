package mongo

import (
	"alcyxob/coachy/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const preferenceCollectionName = "preferences"

type preferenceDoc struct {
	Owner     string    `bson:"owner"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoPreferenceStore implements repository.KeyValueStore on one document per owner/key pair.
type mongoPreferenceStore struct {
	collection *mongo.Collection
}

// NewMongoPreferenceStore creates a key-value store backed by the preferences collection.
func NewMongoPreferenceStore(db *mongo.Database) repository.KeyValueStore {
	return &mongoPreferenceStore{
		collection: db.Collection(preferenceCollectionName),
	}
}

func (s *mongoPreferenceStore) Get(ctx context.Context, owner, key string) (string, error) {
	var doc preferenceDoc
	err := s.collection.FindOne(ctx, bson.M{"owner": owner, "key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

func (s *mongoPreferenceStore) Set(ctx context.Context, owner, key, value string) error {
	filter := bson.M{"owner": owner, "key": key}
	update := bson.M{
		"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()},
	}
	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (s *mongoPreferenceStore) Delete(ctx context.Context, owner, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"owner": owner, "key": key})
	return err
}

// EnsurePreferenceIndexes makes owner+key unique so upserts can't duplicate.
func EnsurePreferenceIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
