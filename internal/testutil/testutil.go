package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
	"bookreviews/internal/platform/crypto"
)

// TestSecret is the JWT secret used across handler tests.
const TestSecret = "test-secret"

func mustObjectID(hex string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return oid
}

var (
	TestUserID  = mustObjectID("64f000000000000000000001")
	OtherUserID = mustObjectID("64f000000000000000000002")
	TestBookID  = mustObjectID("64f0000000000000000000a1")
)

// TestUser is a fixture user for testing.
var TestUser = entity.User{
	ID:        TestUserID,
	Name:      "Test Reader",
	Email:     "reader@example.com",
	Password:  "$2a$10$hashedhashedhashedhashedhashedhashedhashedhashedhash",
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// NewTestBook returns a fresh valid review owned by TestUser.
func NewTestBook() entity.Book {
	year := 1965
	return entity.Book{
		ID:            TestBookID,
		Title:         "Dune",
		Author:        "Herbert",
		Description:   "A desert planet and its spice",
		Rating:        5,
		Review:        "A dense but rewarding read",
		Image:         entity.DefaultCoverImage,
		Genre:         "Sci-Fi",
		PublishedYear: &year,
		UserID:        TestUserID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// GenerateTestToken generates a valid JWT for testing.
func GenerateTestToken(secret, userID string) string {
	token, _ := crypto.GenerateToken(secret, userID, time.Hour)
	return token
}

// GenerateExpiredToken generates a JWT that expired an hour ago.
func GenerateExpiredToken(secret, userID string) string {
	c := crypto.Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}
