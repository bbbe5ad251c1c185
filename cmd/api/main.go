package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"bookreviews/internal/auth"
	"bookreviews/internal/book"
	"bookreviews/internal/httpx"
	"bookreviews/internal/platform/mongodb"
	"bookreviews/internal/user"
)

const (
	storeTimeout = 5 * time.Second
	maxBodyBytes = 1 << 20
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DB", "bookreviews")
	jwtSecret := mustGetEnv("JWT_SECRET")
	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",")
	rateRPS := getEnvFloat("RATE_LIMIT_RPS", 10)
	rateBurst := getEnvInt("RATE_LIMIT_BURST", 20)

	client := mustOpenMongo(mongoURI)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(mongoDB)
	if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("cannot create indexes: %v", err)
	}

	bookRepository := book.NewMongoRepo(db.Collection(mongodb.BooksCollection), storeTimeout)
	userRepository := user.NewMongoRepo(db.Collection(mongodb.UsersCollection), storeTimeout)

	bookService := book.NewService(bookRepository)
	userService := user.NewService(userRepository)
	authService := auth.NewService(jwtSecret, userService)

	bookHandler := book.NewHTTPHandler(bookService)
	authHandler := auth.NewHTTPHandler(authService)

	requireAuth := httpx.AuthMiddleware(jwtSecret)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("GET /books", bookHandler.List)
	mux.HandleFunc("GET /books/{id}", bookHandler.GetByID)
	mux.HandleFunc("GET /books/user/{userId}", bookHandler.ListByOwner)
	mux.Handle("POST /books", requireAuth(http.HandlerFunc(bookHandler.Create)))
	mux.Handle("PUT /books/{id}", requireAuth(http.HandlerFunc(bookHandler.Update)))
	mux.Handle("DELETE /books/{id}", requireAuth(http.HandlerFunc(bookHandler.Delete)))

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("GET /auth/profile", requireAuth(http.HandlerFunc(authHandler.Profile)))

	rateLimit := httpx.NewRateLimitMiddleware(rateRPS, rateBurst)

	var handler http.Handler = mux
	handler = httpx.AccessLogMiddleware(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(maxBodyBytes)(handler)
	handler = httpx.CORSMiddleware(corsOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustGetEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Fatalf("missing required environment variable: %s", key)
	return ""
}

func mustOpenMongo(uri string) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		log.Fatalf("cannot connect to mongodb (%s): %v", redactURI(uri), err)
	}
	log.Println("mongodb connection OK")
	return client
}

func redactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
