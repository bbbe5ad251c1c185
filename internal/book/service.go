package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
)

// Service implements the review listing, lookup and owner-gated mutations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the client-supplied fields for a new review. Owner, id
// and timestamps are always assigned server-side.
type CreateInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	Review        string `json:"review"`
	Image         string `json:"image"`
	Genre         string `json:"genre"`
	PublishedYear *int   `json:"publishedYear"`
}

// UpdatePatch carries a partial update; nil fields keep their stored value.
type UpdatePatch struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Description   *string `json:"description"`
	Rating        *int    `json:"rating"`
	Review        *string `json:"review"`
	Image         *string `json:"image"`
	Genre         *string `json:"genre"`
	PublishedYear *int    `json:"publishedYear"`
}

// List returns books matching the query, newest first unless the query says
// otherwise, each enriched with its owner's public fields.
func (s *Service) List(ctx context.Context, q Query) ([]entity.Book, error) {
	return s.repo.List(ctx, q)
}

// ListByOwner returns one user's books, newest first. An id that cannot name
// any user matches nothing.
func (s *Service) ListByOwner(ctx context.Context, userID string) ([]entity.Book, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []entity.Book{}, nil
	}
	return s.repo.ListByOwner(ctx, oid)
}

// Get returns a single enriched book.
func (s *Service) Get(ctx context.Context, id string) (entity.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Book{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, oid)
}

// Create validates the fields, persists the review owned by the requester and
// returns the enriched record.
func (s *Service) Create(ctx context.Context, requesterID string, in CreateInput) (entity.Book, error) {
	ownerID, err := primitive.ObjectIDFromHex(CanonicalID(requesterID))
	if err != nil {
		return entity.Book{}, ErrForbidden
	}

	b := entity.Book{
		Title:         in.Title,
		Author:        in.Author,
		Description:   in.Description,
		Rating:        in.Rating,
		Review:        in.Review,
		Image:         in.Image,
		Genre:         in.Genre,
		PublishedYear: in.PublishedYear,
		UserID:        ownerID,
	}
	if b.Image == "" {
		b.Image = entity.DefaultCoverImage
	}

	if err := validateBook(b); err != nil {
		return entity.Book{}, err
	}

	if err := s.repo.Insert(ctx, &b); err != nil {
		return entity.Book{}, err
	}
	return s.repo.GetByID(ctx, b.ID)
}

// Update merges the patch over the stored record, re-validates the merged
// result in full and persists it. Concurrent updates to the same book are
// last-write-wins at the document level.
func (s *Service) Update(ctx context.Context, requesterID, id string, patch UpdatePatch) (entity.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.Book{}, ErrNotFound
	}

	existing, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return entity.Book{}, err
	}

	if err := Authorize(requesterID, existing); err != nil {
		return entity.Book{}, err
	}

	merged := applyPatch(existing, patch)
	if err := validateBook(merged); err != nil {
		return entity.Book{}, err
	}

	if err := s.repo.Update(ctx, oid, merged); err != nil {
		return entity.Book{}, err
	}
	return s.repo.GetByID(ctx, oid)
}

// Delete permanently removes the requester's book. There is no tombstone; a
// repeated delete of the same id is NotFound.
func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	existing, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := Authorize(requesterID, existing); err != nil {
		return err
	}

	return s.repo.Delete(ctx, oid)
}

// applyPatch never touches id, owner or timestamps.
func applyPatch(b entity.Book, patch UpdatePatch) entity.Book {
	b.Owner = nil
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Rating != nil {
		b.Rating = *patch.Rating
	}
	if patch.Review != nil {
		b.Review = *patch.Review
	}
	if patch.Image != nil {
		b.Image = *patch.Image
	}
	if patch.Genre != nil {
		b.Genre = *patch.Genre
	}
	if patch.PublishedYear != nil {
		b.PublishedYear = patch.PublishedYear
	}
	return b
}
