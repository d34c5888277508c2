package evaluation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nimbus/internal/classifier"
	"nimbus/internal/logging"
	"nimbus/internal/services"
)

// Verdict thresholds on overall accuracy.
const (
	PassThreshold    = 0.8
	PartialThreshold = 0.6
)

// Classifier is the subset of *classifier.Classifier the runner needs.
type Classifier interface {
	Classify(ctx context.Context, text string) (classifier.Result, error)
}

// Outcome records how one case fared.
type Outcome struct {
	Case       Case
	Got        classifier.Category
	Confidence float64
	Passed     bool
	// Err is set when the input was rejected before classification.
	Err string
}

// Summary aggregates outcomes for one suite, or for the whole run.
type Summary struct {
	Suite             string
	Total             int
	Passed            int
	Failed            int
	Errored           int
	Accuracy          float64
	AverageConfidence float64
}

// Report is the result of a Run.
type Report struct {
	Suite     string
	StartedAt time.Time
	Duration  time.Duration
	Outcomes  []Outcome
	Suites    []Summary
	Overall   Summary
}

// Verdict buckets overall accuracy into passed, partial or failed.
func (r Report) Verdict() string {
	switch {
	case r.Overall.Accuracy >= PassThreshold:
		return "passed"
	case r.Overall.Accuracy >= PartialThreshold:
		return "partial"
	default:
		return "failed"
	}
}

// Runner classifies canned cases and scores them against expectations.
type Runner struct {
	classifier Classifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewRunner builds a Runner around c.
func NewRunner(c Classifier, logger *slog.Logger) *Runner {
	return &Runner{
		classifier: c,
		logger:     logging.NewComponentLogger(logger, "evaluation"),
		now:        time.Now,
	}
}

// Run classifies every case of suite in order. Cases are sent one at a time;
// a cancelled context stops the run and returns the context error.
func (r *Runner) Run(ctx context.Context, suite string) (Report, error) {
	cases, err := Cases(suite)
	if err != nil {
		return Report{}, err
	}
	if suite == "" {
		suite = SuiteAll
	}
	ctx = services.WithOperation(ctx, "eval")
	logger := logging.WithContext(ctx, r.logger)

	started := r.now()
	report := Report{Suite: suite, StartedAt: started}
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		report.Outcomes = append(report.Outcomes, r.runCase(ctx, c))
	}
	report.Duration = r.now().Sub(started)
	report.Suites, report.Overall = summarize(report.Outcomes)

	logger.Info("evaluation complete",
		logging.String("suite", suite),
		logging.Int("cases", report.Overall.Total),
		logging.Int("passed", report.Overall.Passed),
		logging.Float64("accuracy", report.Overall.Accuracy),
		logging.String("verdict", report.Verdict()),
	)
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, c Case) Outcome {
	result, err := r.classifier.Classify(ctx, c.Text)
	if err != nil {
		outcome := Outcome{Case: c, Got: classifier.Error, Err: err.Error()}
		var validationErr *classifier.ValidationError
		if errors.As(err, &validationErr) {
			outcome.Err = validationErr.Reason
		}
		return outcome
	}
	return Outcome{
		Case:       c,
		Got:        result.Category,
		Confidence: result.Confidence,
		Passed:     result.Category == c.Expected,
	}
}

func summarize(outcomes []Outcome) ([]Summary, Summary) {
	bySuite := make(map[string]*Summary)
	sums := make(map[string]float64)
	var order []string
	overall := Summary{Suite: SuiteAll}
	var overallSum float64

	for _, outcome := range outcomes {
		name := outcome.Case.Suite
		s, ok := bySuite[name]
		if !ok {
			s = &Summary{Suite: name}
			bySuite[name] = s
			order = append(order, name)
		}
		for _, target := range []*Summary{s, &overall} {
			target.Total++
			switch {
			case outcome.Passed:
				target.Passed++
			case outcome.Err != "" || outcome.Got == classifier.Error:
				target.Errored++
				target.Failed++
			default:
				target.Failed++
			}
		}
		sums[name] += outcome.Confidence
		overallSum += outcome.Confidence
	}

	suites := make([]Summary, 0, len(order))
	for _, name := range order {
		s := bySuite[name]
		finish(s, sums[name])
		suites = append(suites, *s)
	}
	finish(&overall, overallSum)
	return suites, overall
}

func finish(s *Summary, confidenceSum float64) {
	if s.Total == 0 {
		return
	}
	s.Accuracy = float64(s.Passed) / float64(s.Total)
	s.AverageConfidence = confidenceSum / float64(s.Total)
}
