package usecases

import "github.com/custodia-labs/casegen/internal/core/domain"

// Build returns the template use-cases for feats. The two signup baselines
// are always present; password, verification and rate-limit templates
// follow in that order when detected. Every use-case cites citations.
func Build(feats FeatureSet, citations []domain.Citation) []domain.UseCase {
	out := []domain.UseCase{
		{
			Title:         "Signup with valid email and password",
			Preconditions: []string{"User is logged out"},
			TestData: map[string]string{
				"email":    "new_user@example.com",
				"password": "StrongPass#123",
			},
			Steps: []string{
				"Open the Signup page.",
				"Enter a valid email.",
				"Enter a valid password.",
				"Submit the form.",
			},
			ExpectedResults: []string{
				"Account is created successfully.",
				"User is redirected or shown next steps per product spec.",
			},
		},
		{
			Title:         "Reject duplicate email signup",
			Preconditions: []string{"An account exists for existing@example.com"},
			TestData: map[string]string{
				"email":    "existing@example.com",
				"password": "AnotherStrong#1",
			},
			Steps: []string{
				"Open Signup page.",
				"Enter an existing email.",
				"Enter a valid password.",
				"Submit the form.",
			},
			ExpectedResults: []string{
				"Error shown (e.g., 'Email already exists').",
				"No new account is created.",
			},
		},
	}

	if feats.Has(FeaturePassword) {
		out = append(out, domain.UseCase{
			Title:    "Password policy validation",
			TestData: map[string]string{"password": "12345"},
			Steps: []string{
				"Open Signup page.",
				"Enter valid email.",
				"Enter a weak password (e.g., '12345').",
				"Submit the form.",
			},
			ExpectedResults: []string{
				"Inline validation explaining password rules.",
				"Signup is blocked until password meets policy.",
			},
		})
	}

	if feats.Has(FeatureVerification) {
		out = append(out, domain.UseCase{
			Title:         "Email verification flows",
			Preconditions: []string{"User signed up and received an email"},
			Steps: []string{
				"Complete signup and receive verification email.",
				"Open verification link.",
			},
			ExpectedResults: []string{
				"Account is verified if token valid.",
				"If token invalid or expired appropriate error is shown and resend flow recommended.",
			},
		})
	}

	if feats.Has(FeatureRateLimit) {
		out = append(out, domain.UseCase{
			Title: "Resend verification throttling",
			Steps: []string{
				"Trigger resend verification repeatedly (e.g., 5 times within 1 minute).",
			},
			ExpectedResults: []string{
				"Throttling applied or clear feedback to user about resend limits.",
			},
		})
	}

	for i := range out {
		out[i].Citations = append([]domain.Citation(nil), citations...)
		out[i].Normalise()
	}
	return out
}
