package ignore_test

import (
	"strings"
	"testing"

	"github.com/brodalo/gogit/ignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, content string) ignore.RuleSet {
	t.Helper()
	rules, err := ignore.ParseRuleSet(strings.NewReader(content))
	require.NoError(t, err)
	return rules
}

func TestParseRuleSet(t *testing.T) {
	t.Parallel()

	rules := parse(t, "# comment\n\n*.log\n!keep.log\n\\#literal\n  trimmed  \n")
	require.Len(t, rules, 4)
	assert.Equal(t, "*.log", rules[0].Pattern)
	assert.True(t, rules[0].Ignore)
	assert.Equal(t, "keep.log", rules[1].Pattern)
	assert.False(t, rules[1].Ignore)
	assert.Equal(t, "#literal", rules[2].Pattern)
	assert.True(t, rules[2].Ignore)
	assert.Equal(t, "trimmed", rules[3].Pattern)
	assert.True(t, rules[3].Ignore)
}

func TestMatcherPrecedence(t *testing.T) {
	t.Parallel()

	// global rule *.log, local rule !keep.log
	m := ignore.NewMatcher()
	m.AddAbsolute(parse(t, "*.log\n"))
	m.AddAbsolute(parse(t, "!keep.log\n"))

	assert.False(t, m.Match("keep.log"))
	assert.True(t, m.Match("x.log"))
}

func TestMatcherScopedWinsOverAbsolute(t *testing.T) {
	t.Parallel()

	m := ignore.NewMatcher()
	m.AddAbsolute(parse(t, "!build\n"))
	m.AddScoped("", parse(t, "build\n"))

	assert.True(t, m.Match("build"))
}

func TestMatcherWalksUpToRoot(t *testing.T) {
	t.Parallel()

	m := ignore.NewMatcher()
	m.AddScoped("", parse(t, "*.tmp\n"))

	assert.True(t, m.Match("a/b/c.tmp"))
	assert.False(t, m.Match("a/b/c.txt"))
}

func TestMatcherStarCrossesSlashes(t *testing.T) {
	t.Parallel()

	// librgit matches patterns with fnmatch(path, pattern), where "*"
	// matches across "/" like anywhere else in the pattern.
	m := ignore.NewMatcher()
	m.AddScoped("", parse(t, "sub/*.log\n"))

	assert.True(t, m.Match("sub/x.log"))
	assert.True(t, m.Match("sub/deep/x.log"))
	assert.False(t, m.Match("other/x.log"))
}

func TestMatcherNoRulesMatchesNothing(t *testing.T) {
	t.Parallel()

	m := ignore.NewMatcher()
	assert.False(t, m.Match("anything"))
}
