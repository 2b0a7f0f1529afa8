package usecases

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// Feature is a product capability detected in evidence text.
type Feature string

// Known features.
const (
	FeatureEmail        Feature = "email"
	FeaturePassword     Feature = "password"
	FeatureVerification Feature = "verification"
	FeatureRedirect     Feature = "redirect"
	FeatureCaptcha      Feature = "captcha"
	FeatureRateLimit    Feature = "rate_limit"
)

// Rule maps a lower-case keyword to the feature it signals.
type Rule struct {
	Keyword string  `yaml:"keyword"`
	Feature Feature `yaml:"feature"`
}

// Table is an ordered list of keyword rules.
type Table []Rule

// DefaultTable returns the built-in keyword table.
func DefaultTable() Table {
	return Table{
		{Keyword: "email", Feature: FeatureEmail},
		{Keyword: "password", Feature: FeaturePassword},
		{Keyword: "verify", Feature: FeatureVerification},
		{Keyword: "verification", Feature: FeatureVerification},
		{Keyword: "redirect", Feature: FeatureRedirect},
		{Keyword: "captcha", Feature: FeatureCaptcha},
		{Keyword: "rate", Feature: FeatureRateLimit},
		{Keyword: "throttle", Feature: FeatureRateLimit},
	}
}

type tableFile struct {
	Features Table `yaml:"features"`
}

// LoadTable reads a keyword table from a YAML file of the form
//
//	features:
//	  - keyword: verify
//	    feature: verification
//
// An empty path returns DefaultTable.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature table: %w", err)
	}

	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feature table %s: %w", path, err)
	}
	if len(f.Features) == 0 {
		return nil, fmt.Errorf("%w: feature table %s has no rules", domain.ErrInvalidInput, path)
	}

	table := make(Table, 0, len(f.Features))
	for i, r := range f.Features {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" || r.Feature == "" {
			return nil, fmt.Errorf("%w: feature table %s rule %d needs keyword and feature", domain.ErrInvalidInput, path, i+1)
		}
		table = append(table, Rule{Keyword: kw, Feature: r.Feature})
	}
	return table, nil
}

// FeatureSet is the set of features detected in a body of evidence.
type FeatureSet map[Feature]struct{}

// Has reports whether f was detected.
func (s FeatureSet) Has(f Feature) bool {
	_, ok := s[f]
	return ok
}

// Detect returns the features whose keyword occurs as a substring of the
// lower-cased, concatenated evidence text.
func (t Table) Detect(evidence []domain.EvidenceItem) FeatureSet {
	texts := make([]string, len(evidence))
	for i := range evidence {
		texts[i] = evidence[i].Chunk.Text
	}
	text := strings.ToLower(strings.Join(texts, " \n "))

	feats := make(FeatureSet)
	for _, r := range t {
		if strings.Contains(text, r.Keyword) {
			feats[r.Feature] = struct{}{}
		}
	}
	return feats
}
