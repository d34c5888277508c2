package classifier

import (
	"strings"

	"nimbus/internal/textutil"
)

const (
	baseConfidenceTenths = 8
	shortReplyRunes      = 20
)

// hedgePhrases lower a reply's confidence, in English and Spanish.
var hedgePhrases = []string{
	"maybe",
	"perhaps",
	"possibly",
	"probably",
	"not sure",
	"quizás",
	"tal vez",
	"posiblemente",
	"probablemente",
	"no estoy seguro",
}

func cleanReply(reply string) string {
	return strings.ToLower(strings.TrimSpace(reply))
}

// ParseCategory returns the first service model whose lowercase label occurs
// in reply, testing IaaS, PaaS, SaaS and FaaS in that order. A reply naming
// none of them is Undetermined.
func ParseCategory(reply string) Category {
	cleaned := cleanReply(reply)
	for _, model := range ServiceModels {
		if strings.Contains(cleaned, model.needle()) {
			return model
		}
	}
	return Undetermined
}

// EstimateConfidence scores how decisive reply looks, in [0,1].
//
// Starting from 0.8: a short reply (under 20 runes) naming a model gains 0.1,
// a reply over 20 runes gains 0.1, more than one label occurrence costs 0.2
// and any hedge phrase costs 0.2. Arithmetic runs in tenths so results are
// exact decimals.
func EstimateConfidence(reply string) float64 {
	cleaned := cleanReply(reply)
	length := textutil.RuneLength(cleaned)
	mentions := labelMentions(cleaned)

	tenths := baseConfidenceTenths
	if length < shortReplyRunes && mentions > 0 {
		tenths++
	}
	if length > shortReplyRunes {
		tenths++
	}
	if mentions > 1 {
		tenths -= 2
	}
	if containsHedge(cleaned) {
		tenths -= 2
	}
	tenths = max(0, min(10, tenths))
	return float64(tenths) / 10
}

func labelMentions(cleaned string) int {
	total := 0
	for _, model := range ServiceModels {
		total += strings.Count(cleaned, model.needle())
	}
	return total
}

func containsHedge(cleaned string) bool {
	for _, phrase := range hedgePhrases {
		if strings.Contains(cleaned, phrase) {
			return true
		}
	}
	return false
}
