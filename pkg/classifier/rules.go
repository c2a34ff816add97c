package classifier

// Turn-1 clarification rules as an explicitly ordered guard list. The
// cascade short-circuits: the first matching rule produces the follow-up
// question and later rules are never evaluated. Keeping the list flat keeps
// the priority order auditable and lets each rule be tested in isolation.

type ruleInput struct {
	// lowered is the Turkish-lowercased current input, diacritics intact.
	lowered string
	// tokens is the whitespace token count of the raw input.
	tokens int
}

type clarifyRule struct {
	name  string
	match func(in ruleInput, t *Tables) bool
	ask   func(t *Tables) Result
}

// clarifyRules is evaluated in order; do not reorder without revisiting the
// overlap between the help rule and the catch-all (both key off token
// counts with different keyword exclusions).
var clarifyRules = []clarifyRule{
	{
		name: "lesson",
		match: func(in ruleInput, t *Tables) bool {
			return containsAny(in.lowered, t.LessonKeywords)
		},
		ask: func(t *Tables) Result {
			return NeedsClarification(t.LessonQuestion)
		},
	},
	{
		name: "commerce",
		match: func(in ruleInput, t *Tables) bool {
			return containsAny(in.lowered, t.CommerceKeywords) &&
				!containsAny(in.lowered, t.CommerceDisambiguators)
		},
		ask: func(t *Tables) Result {
			return NeedsClarification(t.CommerceQuestion)
		},
	},
	{
		name: "app",
		match: func(in ruleInput, t *Tables) bool {
			return containsAny(in.lowered, t.AppKeywords) &&
				!containsAny(in.lowered, t.AppPlatformKeywords)
		},
		ask: func(t *Tables) Result {
			return NeedsClarification(t.AppQuestion, t.AppOptions...)
		},
	},
	{
		name: "site",
		match: func(in ruleInput, t *Tables) bool {
			return containsAny(in.lowered, t.SiteKeywords) &&
				!containsAny(in.lowered, t.SiteTypeKeywords)
		},
		ask: func(t *Tables) Result {
			return NeedsClarification(t.SiteQuestion, t.SiteOptions...)
		},
	},
	{
		name: "help",
		match: func(in ruleInput, t *Tables) bool {
			return containsAny(in.lowered, t.HelpKeywords) && in.tokens < t.HelpMaxTokens
		},
		ask: func(t *Tables) Result {
			return NeedsClarification(t.HelpQuestion, t.HelpOptions...)
		},
	},
	{
		name: "catch-all",
		match: func(in ruleInput, t *Tables) bool {
			return in.tokens < t.CatchAllMaxTokens && !containsAny(in.lowered, t.EscapeKeywords)
		},
		ask: func(t *Tables) Result {
			return NeedsClarification(t.ElaborateQuestion)
		},
	},
}

// firstClarification runs the guard list and returns the question of the
// first rule that fires.
func firstClarification(in ruleInput, t *Tables) (Result, bool) {
	for _, r := range clarifyRules {
		if r.match(in, t) {
			return r.ask(t), true
		}
	}
	return Result{}, false
}
