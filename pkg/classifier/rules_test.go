package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRules(t *testing.T, input string) (Result, bool) {
	t.Helper()
	in := ruleInput{lowered: lowerTurkish(input), tokens: tokenCount(input)}
	return firstClarification(in, DefaultTables())
}

func TestClarifyRules_Ordering(t *testing.T) {
	// Lesson wins over help even though both keyword families are present.
	res, ok := runRules(t, "özel ders veriyorum yardım lazım")
	require.True(t, ok)
	assert.Equal(t, DefaultTables().LessonQuestion, res.Question)
}

func TestClarifyRules_Commerce(t *testing.T) {
	res, ok := runRules(t, "e-ticaret hakkında konuşalım arkadaşlar")
	require.True(t, ok)
	assert.Equal(t, DefaultTables().CommerceQuestion, res.Question)

	// A stated goal suppresses the question.
	_, ok = runRules(t, "e-ticaret sitemi satmak istiyorum ben")
	assert.False(t, ok)
}

func TestClarifyRules_App(t *testing.T) {
	res, ok := runRules(t, "bir uygulama geliştirmek istiyorum bugünlerde")
	require.True(t, ok)
	assert.Equal(t, DefaultTables().AppQuestion, res.Question)
	assert.Equal(t, []string{"Web", "Mobil", "Masaüstü"}, res.Options)

	// Naming a platform answers the question before it is asked.
	_, ok = runRules(t, "mobil uygulama fikrim var arkadaşlar")
	assert.False(t, ok)
}

func TestClarifyRules_Site(t *testing.T) {
	res, ok := runRules(t, "kendime bir site yapmak istiyorum")
	require.True(t, ok)
	assert.Equal(t, DefaultTables().SiteQuestion, res.Question)
	assert.Len(t, res.Options, 4)

	_, ok = runRules(t, "blog sitesi olsun istiyorum ben")
	assert.False(t, ok)
}

func TestClarifyRules_HelpTokenBoundary(t *testing.T) {
	// Seven tokens: short enough to be considered vague.
	res, ok := runRules(t, "projemde bir sorun var yardım lazım bana")
	require.True(t, ok)
	assert.Equal(t, DefaultTables().HelpQuestion, res.Question)
	assert.NotEmpty(t, res.Options)

	// Eight tokens: long enough to classify directly.
	_, ok = runRules(t, "çok acil yardım lazım bana bugün lütfen dostlar")
	assert.False(t, ok)
}

func TestClarifyRules_CatchAll(t *testing.T) {
	res, ok := runRules(t, "golang öğreniyorum şimdi")
	require.True(t, ok)
	assert.Equal(t, DefaultTables().ElaborateQuestion, res.Question)

	// Known technology names are self-sufficient even when short.
	_, ok = runRules(t, "react öğreniyorum şimdi")
	assert.False(t, ok)

	// Five tokens clears the threshold.
	_, ok = runRules(t, "golang dilini öğrenmeye başladım bugün")
	assert.False(t, ok)
}
