package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
	"bookreviews/internal/httpx"
	"bookreviews/internal/platform/crypto"
	"bookreviews/internal/testutil"
	"bookreviews/internal/user"
)

type fakeUserRepo struct {
	byEmail map[string]entity.User
	byID    map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]entity.User),
		byID:    make(map[string]entity.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return user.ErrAlreadyExists
	}
	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.byEmail[u.Email] = *u
	f.byID[u.ID.Hex()] = *u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return entity.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return entity.User{}, user.ErrNotFound
	}
	return u, nil
}

func newTestHandler() (*HTTPHandler, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewHTTPHandler(NewService(testutil.TestSecret, user.NewService(repo))), repo
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	r := httptest.NewRequest(http.MethodPost, path, &buf)
	w := httptest.NewRecorder()

	handler(w, r)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHTTPHandler_Register(t *testing.T) {
	t.Run("success issues a token and sets the cookie", func(t *testing.T) {
		h, _ := newTestHandler()

		w, resp := postJSON(t, h.Register, "/auth/register", map[string]string{
			"name":     "Ana",
			"email":    "Ana@Example.com",
			"password": "Password123!",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data := resp["data"].(map[string]any)
		token := data["token"].(string)
		claims, err := crypto.ParseToken(testutil.TestSecret, token)
		require.NoError(t, err)

		u := data["user"].(map[string]any)
		assert.Equal(t, claims.Sub, u["id"])
		assert.Equal(t, "ana@example.com", u["email"])
		assert.NotContains(t, u, "password")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, httpx.TokenCookie, cookies[0].Name)
		assert.Equal(t, token, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		h, _ := newTestHandler()

		body := map[string]string{"name": "Ana", "email": "ana@example.com", "password": "Password123!"}
		w, _ := postJSON(t, h.Register, "/auth/register", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w, resp := postJSON(t, h.Register, "/auth/register", body)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "EMAIL_IN_USE", resp["error"].(map[string]any)["code"])
	})

	t.Run("every invalid field is reported", func(t *testing.T) {
		h, _ := newTestHandler()

		w, resp := postJSON(t, h.Register, "/auth/register", map[string]string{
			"name":     "A",
			"email":    "nope",
			"password": "short",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		details := resp["error"].(map[string]any)["details"].([]any)
		assert.Len(t, details, 3)
	})
}

func TestHTTPHandler_Login(t *testing.T) {
	h, _ := newTestHandler()

	w, _ := postJSON(t, h.Register, "/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials", func(t *testing.T) {
		w, resp := postJSON(t, h.Login, "/auth/login", map[string]string{
			"email":    "ana@example.com",
			"password": "Password123!",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, resp["data"].(map[string]any)["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w, _ := postJSON(t, h.Login, "/auth/login", map[string]string{
			"email":    "ana@example.com",
			"password": "WrongPassword1!",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w, _ := postJSON(t, h.Login, "/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Password123!",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHTTPHandler_Profile(t *testing.T) {
	h, repo := newTestHandler()

	w, resp := postJSON(t, h.Register, "/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := resp["data"].(map[string]any)["user"].(map[string]any)["id"].(string)

	t.Run("authenticated user sees their profile", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		r = r.WithContext(httpx.ContextWithUser(r.Context(), userID))
		w := httptest.NewRecorder()

		h.Profile(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var profileResp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profileResp))
		assert.Equal(t, "Ana", profileResp["data"].(map[string]any)["name"])
	})

	t.Run("subject no longer resolves", func(t *testing.T) {
		delete(repo.byID, userID)

		r := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		r = r.WithContext(httpx.ContextWithUser(r.Context(), userID))
		w := httptest.NewRecorder()

		h.Profile(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing context user", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		w := httptest.NewRecorder()

		h.Profile(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
