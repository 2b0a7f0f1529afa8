package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"prose around array", `Here you go: [1, 2] done`, `[1, 2]`, false},
		{"markdown fence", "```json\n{\"use_cases\": []}\n```", `{"use_cases": []}`, false},
		{"brackets in strings", `{"t":"a ] } b"}`, `{"t":"a ] } b"}`, false},
		{"escaped quote", `{"t":"say \"}\""}`, `{"t":"say \"}\""}`, false},
		{"nested", `x {"a":[{"b":[]}]} y`, `{"a":[{"b":[]}]}`, false},
		{"skips unbalanced prefix", `[oops} then {"ok":true}`, `{"ok":true}`, false},
		{"no json", `no payload here`, "", true},
		{"unterminated", `{"a": [1, 2`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrNoJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeUseCases(t *testing.T) {
	t.Run("object with use_cases", func(t *testing.T) {
		resp := "Sure!\n```json\n" + `{"use_cases":[{"title":"Login","steps":["Open"],"test_data":{"retries":3,"email":"a@b.c"}}]}` + "\n```"
		ucs, err := DecodeUseCases(resp)
		require.NoError(t, err)
		require.Len(t, ucs, 1)
		assert.Equal(t, "Login", ucs[0].Title)
		assert.Equal(t, []string{"Open"}, ucs[0].Steps)
		assert.Equal(t, "3", ucs[0].TestData["retries"])
		assert.Equal(t, "a@b.c", ucs[0].TestData["email"])
	})

	t.Run("array of records", func(t *testing.T) {
		ucs, err := DecodeUseCases(`[{"title":"A"},{"title":"  "},{"title":"B","goal":"G"}]`)
		require.NoError(t, err)
		require.Len(t, ucs, 2)
		assert.Equal(t, "B", ucs[1].Title)
		assert.Equal(t, "G", ucs[1].Goal)
	})

	t.Run("single use-case object", func(t *testing.T) {
		ucs, err := DecodeUseCases(`Here it is: {"title":"Reset password","steps":["Request link"],"test_data":{"email":"a@b.c"}}`)
		require.NoError(t, err)
		require.Len(t, ucs, 1)
		assert.Equal(t, "Reset password", ucs[0].Title)
		assert.Equal(t, []string{"Request link"}, ucs[0].Steps)
		assert.Equal(t, "a@b.c", ucs[0].TestData["email"])
	})

	t.Run("object without title or use_cases", func(t *testing.T) {
		_, err := DecodeUseCases(`{"goal":"G"}`)
		assert.ErrorContains(t, err, "no use-cases")
	})

	t.Run("no span", func(t *testing.T) {
		_, err := DecodeUseCases("I cannot help with that")
		assert.ErrorIs(t, err, domain.ErrNoJSON)
	})

	t.Run("bad shape", func(t *testing.T) {
		_, err := DecodeUseCases(`{"use_cases":"nope"}`)
		assert.Error(t, err)
	})

	t.Run("zero use cases", func(t *testing.T) {
		_, err := DecodeUseCases(`{"use_cases":[]}`)
		assert.ErrorContains(t, err, "no use-cases")
	})
}
