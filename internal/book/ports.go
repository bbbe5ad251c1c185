package book

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
)

var (
	// ErrNotFound is returned when a book id does not resolve.
	ErrNotFound = errors.New("book not found")
	// ErrForbidden is returned when the requester does not own the book.
	ErrForbidden = errors.New("not the book owner")
)

// Query defines the filters and ordering for listing books.
type Query struct {
	Search    string
	Genre     string
	SortBy    string
	SortOrder string
}

// Repository defines the contract for book data storage. Reads return books
// enriched with the owner's public fields.
type Repository interface {
	List(ctx context.Context, q Query) ([]entity.Book, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]entity.Book, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (entity.Book, error)
	Insert(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, id primitive.ObjectID, b entity.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
