package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleReq struct {
	Name          string `validate:"required,min=2"`
	Email         string `validate:"required,email"`
	Rating        int    `validate:"required,gte=1,lte=5"`
	PublishedYear *int   `validate:"omitempty,published_year"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct yields no details", func(t *testing.T) {
		year := 2001
		details := ValidateStruct(sampleReq{Name: "Ana", Email: "ana@example.com", Rating: 4, PublishedYear: &year})
		assert.Nil(t, details)
	})

	t.Run("all violations reported with lowercased field names", func(t *testing.T) {
		details := ValidateStruct(sampleReq{Name: "A", Email: "nope", Rating: 9})
		require.Len(t, details, 3)

		fields := make(map[string]string)
		for _, d := range details {
			fields[d.Field] = d.Message
		}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "rating")
		assert.Equal(t, "Rating must be at most 5", fields["rating"])
	})

	t.Run("published_year tracks the calendar", func(t *testing.T) {
		year := time.Now().Year() + 1
		details := ValidateStruct(sampleReq{Name: "Ana", Email: "ana@example.com", Rating: 4, PublishedYear: &year})
		require.Len(t, details, 1)
		assert.Equal(t, "publishedYear", details[0].Field)

		year = time.Now().Year()
		assert.Nil(t, ValidateStruct(sampleReq{Name: "Ana", Email: "ana@example.com", Rating: 4, PublishedYear: &year}))
	})
}
