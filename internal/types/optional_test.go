package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantSet bool
		want    string
		wantErr error
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "value", body: `{"name":"Ada"}`, wantSet: true, want: "Ada"},
		{name: "empty string is a value", body: `{"name":""}`, wantSet: true, want: ""},
		{name: "null rejected", body: `{"name":null}`, wantErr: ErrNullNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, p.Name.Set)
			assert.Equal(t, tt.want, p.Name.Value)
		})
	}
}

func TestOptional_WrongTypeFails(t *testing.T) {
	var p struct {
		N Optional[int] `json:"n"`
	}
	err := json.Unmarshal([]byte(`{"n":"seven"}`), &p)
	assert.Error(t, err)
	assert.False(t, p.N.Set)
}

func TestNullable_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Points Nullable[int] `json:"points"`
	}

	tests := []struct {
		name     string
		body     string
		wantSet  bool
		wantNull bool
		want     int
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"points":null}`, wantSet: true, wantNull: true},
		{name: "zero", body: `{"points":0}`, wantSet: true, want: 0},
		{name: "value", body: `{"points":250}`, wantSet: true, want: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantSet, p.Points.Set)
			assert.Equal(t, tt.wantNull, p.Points.Null)
			assert.Equal(t, tt.want, p.Points.Value)
		})
	}
}

func TestNullable_ApplyTo(t *testing.T) {
	orig := "555-0100"

	t.Run("absent keeps value", func(t *testing.T) {
		dst := &orig
		Nullable[string]{}.ApplyTo(&dst)
		require.NotNil(t, dst)
		assert.Equal(t, "555-0100", *dst)
	})

	t.Run("null clears value", func(t *testing.T) {
		dst := &orig
		Null[string]().ApplyTo(&dst)
		assert.Nil(t, dst)
	})

	t.Run("value replaces without aliasing", func(t *testing.T) {
		var dst *string
		n := Value("555-0199")
		n.ApplyTo(&dst)
		require.NotNil(t, dst)
		assert.Equal(t, "555-0199", *dst)
		*dst = "changed"
		assert.Equal(t, "555-0199", n.Value)
	})
}

func TestUnwrap(t *testing.T) {
	assert.Nil(t, Optional[string]{}.Unwrap())
	assert.Equal(t, "x", Some("x").Unwrap())
	assert.Equal(t, (*int)(nil), Nullable[int]{}.Unwrap())
	assert.Equal(t, (*int)(nil), Null[int]().Unwrap())
	five := 5
	assert.Equal(t, &five, Value(5).Unwrap())
}
