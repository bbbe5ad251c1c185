package book

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookreviews/internal/entity"
	"bookreviews/internal/platform/mongodb"
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

// listFilter translates the query into a document filter. Search rides the
// text index over title/author/description; genre is a case-insensitive
// substring match. Both compose with AND.
func listFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	if q.Genre != "" {
		filter["genre"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Genre), Options: "i"}
	}
	return filter
}

// listSort maps the sort parameters onto a stable ordering. Unrecognized
// fields fall back to newest-first; _id breaks ties deterministically.
func listSort(q Query) bson.D {
	order := -1
	if strings.EqualFold(q.SortOrder, "asc") {
		order = 1
	}

	var field string
	switch q.SortBy {
	case "rating":
		field = "rating"
	case "publishedYear":
		field = "publishedYear"
	case "createdAt":
		field = "createdAt"
	default:
		field = "createdAt"
		order = -1
	}

	return bson.D{{Key: field, Value: order}, {Key: "_id", Value: order}}
}

// ownerLookupStages joins the owner's public fields onto each book under
// "owner". The join keeps books whose owner no longer resolves.
func ownerLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongodb.UsersCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "owner.password", Value: 0}}}},
	}
}

func (r *MongoRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return nil, err
	}

	books := make([]entity.Book, 0)
	if err := cursor.All(timeoutCtx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]entity.Book, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: listFilter(q)}},
		bson.D{{Key: "$sort", Value: listSort(q)}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)
	return r.aggregate(ctx, pipeline)
}

func (r *MongoRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]entity.Book, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"userId": ownerID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)
	return r.aggregate(ctx, pipeline)
}

func (r *MongoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.Book, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	books, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return entity.Book{}, err
	}
	if len(books) == 0 {
		return entity.Book{}, ErrNotFound
	}
	return books[0], nil
}

func (r *MongoRepo) Insert(ctx context.Context, b *entity.Book) error {
	b.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.collection.InsertOne(timeoutCtx, b)
	return err
}

func (r *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, b entity.Book) error {
	set := bson.M{
		"title":       b.Title,
		"author":      b.Author,
		"description": b.Description,
		"rating":      b.Rating,
		"review":      b.Review,
		"image":       b.Image,
		"genre":       b.Genre,
		"updatedAt":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if b.PublishedYear != nil {
		set["publishedYear"] = *b.PublishedYear
	} else {
		update["$unset"] = bson.M{"publishedYear": ""}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.collection.UpdateOne(timeoutCtx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.collection.DeleteOne(timeoutCtx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
