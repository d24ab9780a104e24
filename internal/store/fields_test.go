package store

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func decodeObject(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return raw
}

func TestParseMovieFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Fields
		wantErr bool
	}{
		{
			name: "full payload",
			body: `{"title":"X","description":"d","trailer":"t","year":2020,"rating":7.5,"genre_id":1,"director_id":2}`,
			want: Fields{
				"title":       "X",
				"description": "d",
				"trailer":     "t",
				"year":        int64(2020),
				"rating":      7.5,
				"genre_id":    int64(1),
				"director_id": int64(2),
			},
		},
		{
			name: "null clears column",
			body: `{"genre_id":null}`,
			want: Fields{"genre_id": nil},
		},
		{
			name: "empty object",
			body: `{}`,
			want: Fields{},
		},
		{
			name: "integer rating is accepted",
			body: `{"rating":8}`,
			want: Fields{"rating": float64(8)},
		},
		{name: "id is not writable", body: `{"id":5}`, wantErr: true},
		{name: "unknown field", body: `{"title":"X","studio":"A24"}`, wantErr: true},
		{name: "string year", body: `{"year":"2020"}`, wantErr: true},
		{name: "fractional year", body: `{"year":2020.5}`, wantErr: true},
		{name: "numeric title", body: `{"title":7}`, wantErr: true},
		{name: "negative reference", body: `{"director_id":-1}`, wantErr: true},
		{name: "NUL in text", body: `{"title":"a\u0000b"}`, wantErr: true},
		{name: "year beyond integer column", body: `{"year":3000000000}`, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMovieFields(decodeObject(t, tc.body))
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestParseNamedEntityFields(t *testing.T) {
	fields, err := ParseGenreFields(decodeObject(t, `{"name":"Drama"}`))
	if err != nil {
		t.Fatalf("ParseGenreFields: %v", err)
	}
	if fields["name"] != "Drama" {
		t.Fatalf("unexpected fields: %#v", fields)
	}

	if _, err := ParseGenreFields(decodeObject(t, `{"name":"a\u0000b"}`)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for NUL byte, got %v", err)
	}

	if _, err := ParseDirectorFields(decodeObject(t, `{"name":"Mann","born":1943}`)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown director field, got %v", err)
	}
}

func TestFieldsColumnsFollowTableOrder(t *testing.T) {
	f := Fields{"director_id": int64(1), "title": "X", "year": int64(1999)}

	got := f.columns(movieTable)
	want := []string{"title", "year", "director_id"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
