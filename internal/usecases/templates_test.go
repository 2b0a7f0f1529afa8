package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func titles(ucs []domain.UseCase) []string {
	out := make([]string, len(ucs))
	for i := range ucs {
		out[i] = ucs[i].Title
	}
	return out
}

func TestBuild_Baselines(t *testing.T) {
	ucs := Build(FeatureSet{}, nil)

	assert.Equal(t, []string{
		"Signup with valid email and password",
		"Reject duplicate email signup",
	}, titles(ucs))

	for _, uc := range ucs {
		assert.Equal(t, uc.Title, uc.Goal)
		assert.NotNil(t, uc.Citations)
		assert.NotNil(t, uc.NegativeCases)
	}
	assert.Equal(t, "new_user@example.com", ucs[0].TestData["email"])
	assert.Equal(t, []string{"An account exists for existing@example.com"}, ucs[1].Preconditions)
}

func TestBuild_FeatureOrder(t *testing.T) {
	feats := FeatureSet{
		FeatureRateLimit:    {},
		FeatureVerification: {},
		FeaturePassword:     {},
		FeatureCaptcha:      {},
	}
	ucs := Build(feats, nil)

	assert.Equal(t, []string{
		"Signup with valid email and password",
		"Reject duplicate email signup",
		"Password policy validation",
		"Email verification flows",
		"Resend verification throttling",
	}, titles(ucs))
}

func TestBuild_PasswordScenario(t *testing.T) {
	evidence := items("Password must be at least 8 characters and include a number.")
	citations := domain.Citations(evidence, 5)

	ucs := Build(DefaultTable().Detect(evidence), citations)

	require.Len(t, ucs, 3)
	assert.Equal(t, "Password policy validation", ucs[2].Title)
	assert.Equal(t, map[string]string{"password": "12345"}, ucs[2].TestData)
	for _, uc := range ucs {
		assert.Equal(t, citations, uc.Citations)
	}
}

func TestBuild_CitationsAreCopied(t *testing.T) {
	citations := []domain.Citation{{ID: "a", Source: "x.md", Score: 0.4}}
	ucs := Build(FeatureSet{}, citations)

	ucs[0].Citations[0].ID = "changed"
	assert.Equal(t, "a", ucs[1].Citations[0].ID)
	assert.Equal(t, "a", citations[0].ID)
}
