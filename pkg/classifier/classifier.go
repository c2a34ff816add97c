package classifier

import "context"

// Message roles in a classification dialogue.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of the dialogue between the user and the
// classifier. The caller owns the transcript and passes it in full on every
// call; the engines hold no state between invocations.
type Message struct {
	Role string
	Text string
}

// Subcategory is one leaf of the caller-supplied taxonomy.
type Subcategory struct {
	ID   int64
	Name string
}

// Category groups subcategories. The taxonomy is supplied fresh on every
// call and is never persisted by this package. IDs are carried for the
// caller's benefit only; matching works on display names.
type Category struct {
	ID            int64
	Name          string
	Subcategories []Subcategory
}

// Phase makes the two states of the dialogue explicit instead of being
// inferred from the transcript length.
type Phase int

const (
	// PhaseUnknown lets the engine derive the phase from the history.
	PhaseUnknown Phase = iota
	// PhaseFirstInput is the opening turn: the nonsense gate and the
	// clarification rules apply.
	PhaseFirstInput
	// PhaseClarificationAnswer is any later turn: one clarification round
	// has already been spent, so the engine must commit to a category.
	PhaseClarificationAnswer
)

// DerivePhase reproduces the history-length inference for callers that do
// not track the phase themselves: a transcript with at most one user turn is
// an opening turn.
func DerivePhase(history []Message) Phase {
	users := 0
	for _, m := range history {
		if m.Role == RoleUser {
			users++
		}
	}
	if users <= 1 {
		return PhaseFirstInput
	}
	return PhaseClarificationAnswer
}

// Request carries everything an engine needs for one turn. By convention the
// caller appends Input to History as the last user message before calling;
// the rule engine tolerates callers that do not.
//
// Taxonomy must be non-empty and every category must carry at least one
// subcategory. That is a caller precondition, not something the engines
// check at runtime.
type Request struct {
	Input    string
	Taxonomy []Category
	History  []Message
	Phase    Phase
}

// ResultKind discriminates the two outcomes of a turn.
type ResultKind int

const (
	// KindNeedsClarification means the engine wants one more answer before
	// committing. Options may be empty (free-text follow-up) or a small set
	// of quick replies.
	KindNeedsClarification ResultKind = iota
	// KindClassified is a final recommendation. The name pair is guaranteed
	// to exist in the taxonomy that was passed in.
	KindClassified
)

// Result is the outcome of a single classification turn.
type Result struct {
	Kind            ResultKind
	Question        string
	Options         []string
	CategoryName    string
	SubcategoryName string
}

// NeedsClarification builds a follow-up question result.
func NeedsClarification(question string, options ...string) Result {
	return Result{Kind: KindNeedsClarification, Question: question, Options: options}
}

// Classified builds a final recommendation result.
func Classified(category, subcategory string) Result {
	return Result{Kind: KindClassified, CategoryName: category, SubcategoryName: subcategory}
}

// Engine classifies one dialogue turn. The rule engine is the default
// implementation; LLM-backed engines satisfy the same contract.
type Engine interface {
	Classify(ctx context.Context, req Request) (Result, error)
}

// FindPair looks up a (category, subcategory) display-name pair in the
// taxonomy and returns the stored IDs. Callers use it to translate a
// Classified result back into identifiers before persisting an assignment.
func FindPair(taxonomy []Category, category, subcategory string) (categoryID, subcategoryID int64, ok bool) {
	for _, c := range taxonomy {
		if c.Name != category {
			continue
		}
		for _, s := range c.Subcategories {
			if s.Name == subcategory {
				return c.ID, s.ID, true
			}
		}
	}
	return 0, 0, false
}

// ResolvePair enforces the safety invariant: if the pair does not exist in
// the taxonomy, fall back to the first category's first subcategory, which
// is always available for a well-formed taxonomy.
func ResolvePair(taxonomy []Category, category, subcategory string) (string, string) {
	if _, _, ok := FindPair(taxonomy, category, subcategory); ok {
		return category, subcategory
	}
	first := taxonomy[0]
	return first.Name, first.Subcategories[0].Name
}
