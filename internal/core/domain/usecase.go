package domain

// UseCase is a structured test case grounded in retrieved evidence.
type UseCase struct {
	Title           string            `json:"title" yaml:"title"`
	Goal            string            `json:"goal" yaml:"goal"`
	Preconditions   []string          `json:"preconditions" yaml:"preconditions"`
	TestData        map[string]string `json:"test_data" yaml:"test_data"`
	Steps           []string          `json:"steps" yaml:"steps"`
	ExpectedResults []string          `json:"expected_results" yaml:"expected_results"`
	NegativeCases   []string          `json:"negative_cases" yaml:"negative_cases"`
	BoundaryCases   []string          `json:"boundary_cases" yaml:"boundary_cases"`
	Citations       []Citation        `json:"citations" yaml:"citations"`
}

// Normalise replaces nil collections with empty ones so that
// serialised use-cases always carry arrays and objects, never null.
// An empty goal defaults to the title.
func (u *UseCase) Normalise() {
	if u.Goal == "" {
		u.Goal = u.Title
	}
	if u.Preconditions == nil {
		u.Preconditions = []string{}
	}
	if u.TestData == nil {
		u.TestData = map[string]string{}
	}
	if u.Steps == nil {
		u.Steps = []string{}
	}
	if u.ExpectedResults == nil {
		u.ExpectedResults = []string{}
	}
	if u.NegativeCases == nil {
		u.NegativeCases = []string{}
	}
	if u.BoundaryCases == nil {
		u.BoundaryCases = []string{}
	}
	if u.Citations == nil {
		u.Citations = []Citation{}
	}
}
