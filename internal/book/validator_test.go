package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_ValidInput(t *testing.T) {
	errs := ValidateStruct(NewBook{
		Title:     "Dune",
		Image:     "https://img.example.com/dune.jpg",
		Published: "1965-08-01T00:00:00",
	})

	assert.Empty(t, errs)
}

func TestValidateStruct_Messages(t *testing.T) {
	errs := ValidateStruct(NewBook{Image: "dune.jpg", Published: "soon"})

	byField := map[string]string{}
	for _, e := range errs {
		byField[e.Field] = e.Message
	}
	assert.Equal(t, "Title is required", byField["title"])
	assert.Equal(t, "Image must be an absolute URL", byField["image"])
	assert.Contains(t, byField["published"], "must be a date")
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2017-03-16", time.Date(2017, 3, 16, 0, 0, 0, 0, time.UTC)},
		{"2017-03-16T09:30:00", time.Date(2017, 3, 16, 9, 30, 0, 0, time.UTC)},
		{"2017-03-16T09:30:00+02:00", time.Date(2017, 3, 16, 7, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePublished(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := ParsePublished("16/03/2017")
	assert.Error(t, err)
}
