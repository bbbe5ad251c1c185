package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookreviews/internal/entity"
)

type MongoRepo struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoRepo(collection *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{collection: collection, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) Create(ctx context.Context, u *entity.User) error {
	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.collection.InsertOne(timeoutCtx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *MongoRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var u entity.User
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.collection.FindOne(timeoutCtx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.User{}, ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.User{}, ErrNotFound
	}

	var u entity.User
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err = r.collection.FindOne(timeoutCtx, bson.M{"_id": oid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.User{}, ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}
