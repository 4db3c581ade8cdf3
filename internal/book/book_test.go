package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Input
		wantErr bool
	}{
		{
			name: "all fields",
			body: `{"title":"Iracema","author":"José de Alencar","publication_year":1865}`,
			want: Input{Title: strPtr("Iracema"), Author: strPtr("José de Alencar"), PublicationYear: intPtr(1865)},
		},
		{
			name: "empty strings are present",
			body: `{"title":"","author":"","publication_year":0}`,
			want: Input{Title: strPtr(""), Author: strPtr(""), PublicationYear: intPtr(0)},
		},
		{
			name: "numeric string year",
			body: `{"title":"a","author":"b","publication_year":" 1999 "}`,
			want: Input{Title: strPtr("a"), Author: strPtr("b"), PublicationYear: intPtr(1999)},
		},
		{
			name: "absent and null fields stay nil",
			body: `{"publication_year":null}`,
			want: Input{},
		},
		{name: "fractional year", body: `{"publication_year":1999.5}`, wantErr: true},
		{name: "word year", body: `{"publication_year":"soon"}`, wantErr: true},
		{name: "numeric title", body: `{"title":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Input
			err := json.Unmarshal([]byte(tt.body), &in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in)
		})
	}
}

func TestInput_Book(t *testing.T) {
	b, err := Input{Title: strPtr(""), Author: strPtr("b"), PublicationYear: intPtr(0)}.Book()
	require.NoError(t, err)
	assert.Equal(t, Book{Author: "b"}, b)

	for _, in := range []Input{
		{Author: strPtr("b"), PublicationYear: intPtr(1)},
		{Title: strPtr("a"), PublicationYear: intPtr(1)},
		{Title: strPtr("a"), Author: strPtr("b")},
	} {
		_, err := in.Book()
		assert.ErrorIs(t, err, ErrIncompleteInput)
	}
}
