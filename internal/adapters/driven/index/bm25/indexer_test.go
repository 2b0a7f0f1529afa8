package bm25

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

var corpus = []string{
	"Users sign up with an email address and a password.",
	"Password rules require at least eight characters. Passwords expire yearly.",
	"After signup a verification email is sent to the user.",
	"The captcha appears after three failed login attempts.",
}

func open(t *testing.T, texts []string) *Index {
	t.Helper()
	i := New()
	model, matrix, err := i.Build(context.Background(), texts)
	require.NoError(t, err)
	idx, err := i.Open(model, matrix)
	require.NoError(t, err)
	return idx.(*Index)
}

func TestIndexer_Build(t *testing.T) {
	model, matrix, err := New().Build(context.Background(), corpus)
	require.NoError(t, err)

	assert.Equal(t, domain.IndexBackendBM25, model.Backend)
	assert.Equal(t, len(corpus), model.CorpusSize)
	assert.Equal(t, len(corpus), matrix.Len())
	assert.Greater(t, model.AvgDocLength, 0.0)
	assert.Equal(t, DefaultK1, model.K1)
	assert.Equal(t, DefaultB, model.B)
	assert.IsIncreasing(t, model.Vocabulary)

	for _, idf := range model.IDF {
		assert.Greater(t, idf, 0.0)
	}
}

func TestIndexer_WithParams(t *testing.T) {
	i := New(WithParams(1.2, 0.5))
	assert.Equal(t, 1.2, i.k1)
	assert.Equal(t, 0.5, i.b)

	i = New(WithParams(-1, 2))
	assert.Equal(t, DefaultK1, i.k1)
	assert.Equal(t, DefaultB, i.b)
}

func TestIndex_Score(t *testing.T) {
	idx := open(t, corpus)

	t.Run("term frequency ranks first", func(t *testing.T) {
		scores := idx.Score("passwords")
		require.Len(t, scores, len(corpus))
		assert.Greater(t, scores[1], scores[0])
		assert.Equal(t, 0.0, scores[3])
	})

	t.Run("stemming matches inflections", func(t *testing.T) {
		scores := idx.Score("Captchas")
		assert.Greater(t, scores[3], 0.0)
	})

	t.Run("unknown terms score zero", func(t *testing.T) {
		for _, s := range idx.Score("kubernetes") {
			assert.Equal(t, 0.0, s)
		}
	})
}

func TestIndex_Score_EmptyCorpus(t *testing.T) {
	idx := open(t, nil)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Score("anything"))
}

func TestIndexer_Open_Validation(t *testing.T) {
	i := New()
	model, matrix, err := i.Build(context.Background(), corpus)
	require.NoError(t, err)

	_, err = i.Open(&domain.TermModel{Backend: domain.IndexBackendTFIDF, CorpusSize: 4}, matrix)
	assert.True(t, errors.Is(err, domain.ErrIndexUnavailable))

	_, err = i.Open(model, &domain.WeightMatrix{})
	assert.True(t, errors.Is(err, domain.ErrIndexUnavailable))

	_, err = i.Open(nil, nil)
	assert.True(t, errors.Is(err, domain.ErrIndexUnavailable))
}
