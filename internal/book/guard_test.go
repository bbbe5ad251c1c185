package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookreviews/internal/entity"
	"bookreviews/internal/testutil"
)

func TestAuthorize(t *testing.T) {
	owned := testutil.NewTestBook()

	tests := []struct {
		name        string
		requesterID string
		book        entity.Book
		wantErr     error
	}{
		{
			name:        "owner is allowed",
			requesterID: testutil.TestUserID.Hex(),
			book:        owned,
			wantErr:     nil,
		},
		{
			name:        "other user is denied",
			requesterID: testutil.OtherUserID.Hex(),
			book:        owned,
			wantErr:     ErrForbidden,
		},
		{
			name:        "uppercase hex still matches the owner",
			requesterID: strings.ToUpper(testutil.TestUserID.Hex()),
			book:        owned,
			wantErr:     nil,
		},
		{
			name:        "empty requester is denied",
			requesterID: "",
			book:        owned,
			wantErr:     ErrForbidden,
		},
		{
			name:        "owner carried only in the joined record",
			requesterID: testutil.TestUserID.Hex(),
			book: entity.Book{
				Owner: &entity.Owner{ID: testutil.TestUserID, Name: "Test Reader"},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.requesterID, tt.book)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanonicalID(t *testing.T) {
	hex := testutil.TestUserID.Hex()

	assert.Equal(t, hex, CanonicalID(testutil.TestUserID))
	assert.Equal(t, hex, CanonicalID(hex))
	assert.Equal(t, hex, CanonicalID("  "+strings.ToUpper(hex)+"  "))
	assert.Equal(t, hex, CanonicalID(entity.Owner{ID: testutil.TestUserID}))
	assert.Equal(t, hex, CanonicalID(&entity.Owner{ID: testutil.TestUserID}))
	assert.Equal(t, "", CanonicalID((*entity.Owner)(nil)))
	assert.Equal(t, "", CanonicalID(42))
}
