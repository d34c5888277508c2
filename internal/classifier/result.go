package classifier

// Classification methods reported on a Result.
const (
	MethodRemote = "remote-nlp"
	MethodError  = "error"
)

// Result is the outcome of a single classification. It is built once and
// never modified.
type Result struct {
	Category       Category             `json:"category"`
	Confidence     float64              `json:"confidence"`
	Scores         map[Category]float64 `json:"scores"`
	OriginalText   string               `json:"original_text"`
	NormalizedText string               `json:"normalized_text"`
	Method         string               `json:"method"`
	Reply          string               `json:"reply,omitempty"`
	RequestID      string               `json:"request_id,omitempty"`
}

// Score returns the indicator recorded for model, zero when absent.
func (r Result) Score(model Category) float64 {
	return r.Scores[model]
}

// Failed reports whether the classification attempt itself failed.
func (r Result) Failed() bool {
	return r.Category == Error
}

func oneHotScores(detected Category) map[Category]float64 {
	scores := make(map[Category]float64, len(ServiceModels))
	for _, model := range ServiceModels {
		scores[model] = 0
	}
	if detected.IsServiceModel() {
		scores[detected] = 1
	}
	return scores
}

func newErrorResult(original, normalized, requestID string) Result {
	return Result{
		Category:       Error,
		Confidence:     0,
		Scores:         oneHotScores(Error),
		OriginalText:   original,
		NormalizedText: normalized,
		Method:         MethodError,
		RequestID:      requestID,
	}
}
