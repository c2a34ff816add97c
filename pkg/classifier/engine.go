package classifier

import (
	"context"
	"sort"
	"strings"
)

// RuleEngine is the deterministic, rule-based topic classifier. It is a
// pure function of the request and the editorial tables: no I/O, no state
// between calls, safe for concurrent use.
//
// Precondition: the request taxonomy is non-empty and every category has at
// least one subcategory. Callers must not invoke the engine with an empty
// taxonomy; there is deliberately no defensive check.
type RuleEngine struct {
	tables *Tables
}

// NewRuleEngine builds an engine over the given tables, falling back to the
// built-in defaults when tables is nil.
func NewRuleEngine(tables *Tables) *RuleEngine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &RuleEngine{tables: tables}
}

// Tables exposes the editorial tables the engine was built with.
func (e *RuleEngine) Tables() *Tables {
	return e.tables
}

// Classify implements Engine. The error is always nil: low-information and
// ambiguous inputs come back as clarification questions, and an unmatchable
// input falls back to the taxonomy's first category and subcategory.
func (e *RuleEngine) Classify(_ context.Context, req Request) (Result, error) {
	return e.classify(req), nil
}

func (e *RuleEngine) classify(req Request) Result {
	t := e.tables
	phase := req.Phase
	if phase == PhaseUnknown {
		phase = DerivePhase(req.History)
	}

	input := strings.TrimSpace(req.Input)

	if phase == PhaseFirstInput {
		if q, ok := e.gate(input); ok {
			return q
		}
		in := ruleInput{lowered: lowerTurkish(input), tokens: tokenCount(input)}
		if q, ok := firstClarification(in, t); ok {
			return q
		}
	}

	norm := Normalize(conversationText(req))
	candidates := e.scorePairs(norm, req.Taxonomy)

	category, subcategory := e.baseline(norm, req.Taxonomy)
	if len(candidates) > 0 && candidates[0].score >= t.ScoreThreshold {
		category, subcategory = candidates[0].category, candidates[0].subcategory
	}

	// Disambiguation answers carry recency bias: the override reads only
	// the latest user turn, while scoring reads the whole conversation.
	if phase == PhaseClarificationAnswer {
		latest := lowerTurkish(latestUserText(req))
		if containsAny(latest, t.AdKeywords) {
			category, subcategory = t.AdTarget.Category, t.AdTarget.Subcategory
		} else if containsAny(latest, t.InfoKeywords) {
			category, subcategory = t.InfoTarget.Category, t.InfoTarget.Subcategory
		}
	}

	category, subcategory = e.resolve(req.Taxonomy, category, subcategory, candidates)
	return Classified(category, subcategory)
}

// gate rejects inputs with no classifiable content on the opening turn.
func (e *RuleEngine) gate(input string) (Result, bool) {
	if isAllDigits(input) || !hasAlnum(input) || tokenCount(input) < e.tables.MinTokens {
		return NeedsClarification(e.tables.ElaborateQuestion), true
	}
	return Result{}, false
}

type candidate struct {
	category    string
	subcategory string
	score       int
}

// scorePairs computes the additive score for every taxonomy pair against
// the normalized conversation text and returns the non-zero candidates,
// best first. Ties break toward the longer subcategory name.
func (e *RuleEngine) scorePairs(norm string, taxonomy []Category) []candidate {
	t := e.tables
	tokens := strings.Fields(norm)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}
	window := t.EarlyTokenWindow
	if window > len(tokens) {
		window = len(tokens)
	}
	early := strings.Join(tokens[:window], " ")

	var candidates []candidate
	for _, cat := range taxonomy {
		ncat := Normalize(cat.Name)
		for _, sub := range cat.Subcategories {
			nsub := Normalize(sub.Name)
			score := 0
			if nsub != "" && strings.Contains(norm, nsub) {
				score += 8
			}
			if ncat != "" && strings.Contains(norm, ncat) {
				score += 4
			}
			for _, tok := range strings.Fields(nsub) {
				if len(tok) > 2 {
					if _, ok := tokenSet[tok]; ok {
						score += 2
					}
				}
			}
			if containsAny(norm, t.Synonyms[nsub]) || containsAny(norm, t.Synonyms[ncat]) {
				score += 3
			}
			if nsub != "" && strings.Contains(early, nsub) {
				score += 2
			}
			if score > 0 {
				candidates = append(candidates, candidate{
					category:    cat.Name,
					subcategory: sub.Name,
					score:       score,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return len([]rune(candidates[i].subcategory)) > len([]rune(candidates[j].subcategory))
	})
	return candidates
}

// baseline applies the coarse detectors in priority order: freelance intent
// first (with its sell-vs-buy-vs-offer sub-decision), then the generic
// keyword families, then the taxonomy's first pair as the default.
func (e *RuleEngine) baseline(norm string, taxonomy []Category) (string, string) {
	t := e.tables
	if containsAny(norm, t.FreelanceKeywords) {
		switch {
		case containsAny(norm, t.BuyKeywords):
			return t.FreelanceBuy.Category, t.FreelanceBuy.Subcategory
		case containsAny(norm, t.SellKeywords):
			return t.FreelanceSell.Category, t.FreelanceSell.Subcategory
		default:
			return t.FreelanceOffer.Category, t.FreelanceOffer.Subcategory
		}
	}
	for _, d := range t.Detectors {
		if containsAny(norm, d.Keywords) {
			return d.Category, d.Subcategory
		}
	}
	first := taxonomy[0]
	return first.Name, first.Subcategories[0].Name
}

// resolve guarantees the returned pair exists in the taxonomy: the chosen
// pair if present, otherwise the best-scored candidate that is, otherwise
// the first category's first subcategory.
func (e *RuleEngine) resolve(taxonomy []Category, category, subcategory string, candidates []candidate) (string, string) {
	if _, _, ok := FindPair(taxonomy, category, subcategory); ok {
		return category, subcategory
	}
	for _, c := range candidates {
		if _, _, ok := FindPair(taxonomy, c.category, c.subcategory); ok {
			return c.category, c.subcategory
		}
	}
	first := taxonomy[0]
	return first.Name, first.Subcategories[0].Name
}

// conversationText joins the user turns of the transcript, appending the
// current input when the caller has not already recorded it as the last
// user message.
func conversationText(req Request) string {
	var parts []string
	for _, m := range req.History {
		if m.Role == RoleUser && strings.TrimSpace(m.Text) != "" {
			parts = append(parts, m.Text)
		}
	}
	input := strings.TrimSpace(req.Input)
	if input != "" && (len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) != input) {
		parts = append(parts, input)
	}
	return strings.Join(parts, " ")
}

// latestUserText returns the newest user turn (the current input when the
// history does not carry it yet).
func latestUserText(req Request) string {
	if input := strings.TrimSpace(req.Input); input != "" {
		return input
	}
	for i := len(req.History) - 1; i >= 0; i-- {
		if req.History[i].Role == RoleUser {
			return req.History[i].Text
		}
	}
	return ""
}
