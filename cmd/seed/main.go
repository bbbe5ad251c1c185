package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"bookreviews/internal/book"
	"bookreviews/internal/entity"
	"bookreviews/internal/platform/crypto"
	"bookreviews/internal/platform/mongodb"
	"bookreviews/internal/user"
)

const storeTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "bookreviews"
	}

	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	userRepo := user.NewMongoRepo(db.Collection(mongodb.UsersCollection), storeTimeout)
	bookRepo := book.NewMongoRepo(db.Collection(mongodb.BooksCollection), storeTimeout)

	// Every seeded account uses the same demo password.
	passwordHash, err := crypto.HashPassword("Password123!")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	userCount := 20
	bookCount := 200
	log.Printf("Seeding %d users and %d reviews...", userCount, bookCount)

	users := make([]entity.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		u := &entity.User{
			Name:     fmt.Sprintf("Reader %d", i+1),
			Email:    fmt.Sprintf("reader%d@example.com", i+1),
			Password: passwordHash,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			if err == user.ErrAlreadyExists {
				existing, err := userRepo.GetByEmail(ctx, u.Email)
				if err != nil {
					log.Fatalf("Failed to load existing user: %v", err)
				}
				users = append(users, existing)
				continue
			}
			log.Fatalf("Failed to insert user: %v", err)
		}
		users = append(users, *u)
	}

	genres := []string{"Fiction", "Sci-Fi", "History", "Romance", "Mystery", "Biography", "Philosophy", "Fantasy"}

	for i := 0; i < bookCount; i++ {
		owner := users[rand.Intn(len(users))]
		year := 1950 + rand.Intn(time.Now().Year()-1950)
		word := getRandomWord()

		b := entity.Book{
			Title:         fmt.Sprintf("Book %d: %s", i+1, word),
			Author:        fmt.Sprintf("Author %s", word),
			Description:   fmt.Sprintf("A story about %s, and what it costs to find it.", word),
			Rating:        1 + rand.Intn(5),
			Review:        fmt.Sprintf("I picked this up expecting very little and ended up thinking about %s for weeks.", word),
			Image:         entity.DefaultCoverImage,
			Genre:         genres[rand.Intn(len(genres))],
			PublishedYear: &year,
			UserID:        owner.ID,
		}
		if err := bookRepo.Insert(ctx, &b); err != nil {
			log.Fatalf("Failed to insert book: %v", err)
		}

		if (i+1)%50 == 0 {
			log.Printf("Inserted %d/%d reviews", i+1, bookCount)
		}
	}

	total, err := db.Collection(mongodb.BooksCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total reviews in database: %d", total)
}

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "History", "Future",
		"Light", "Darkness", "Time", "Space", "Mind", "Wisdom",
	}
	return words[rand.Intn(len(words))]
}
