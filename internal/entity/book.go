package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCoverImage is used when a review is submitted without a cover URL.
const DefaultCoverImage = "https://via.placeholder.com/300x400?text=Book+Cover"

// Book is one review document in the books collection. The Owner field is
// never stored; list/get queries join it in from the users collection.
type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title" validate:"required,max=100"`
	Author        string             `bson:"author" json:"author" validate:"required,max=50"`
	Description   string             `bson:"description" json:"description" validate:"required,max=1000"`
	Rating        int                `bson:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Review        string             `bson:"review" json:"review" validate:"required,max=2000"`
	Image         string             `bson:"image" json:"image"`
	Genre         string             `bson:"genre,omitempty" json:"genre,omitempty" validate:"omitempty,max=30"`
	PublishedYear *int               `bson:"publishedYear,omitempty" json:"publishedYear,omitempty" validate:"omitempty,published_year"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Owner         *Owner             `bson:"owner,omitempty" json:"user,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Owner is the public slice of a user document exposed on enriched books.
type Owner struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}
