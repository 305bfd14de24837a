// Package ignore parses and matches gitignore-style rule files.
package ignore

import (
	"bufio"
	"io"
	"path"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/xerrors"
)

// Rule represents one line of a gitignore-style file: a pattern and
// its polarity (true to ignore a matching path, false to re-include it).
type Rule struct {
	Pattern string
	Ignore  bool

	// g is Pattern, minus any leading "/", compiled with no separator
	// runes, so "*" matches
	// across "/" the same way Python's fnmatch does against a whole
	// path, rather than Go's path.Match which stops at "/".
	g glob.Glob
}

// RuleSet is an ordered list of rules, parsed from a single file.
type RuleSet []Rule

// ParseRuleSet parses a gitignore-style file from r into a RuleSet.
//
// Blank lines and lines starting with "#" are skipped. A leading "!"
// flips the rule's polarity to re-include. A leading "\" escapes one
// leading "#" or "!" so the pattern can start with those characters
// literally. Remaining whitespace is trimmed.
func ParseRuleSet(r io.Reader) (RuleSet, error) {
	var rules RuleSet
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		rule := Rule{Ignore: true}
		if line[0] == '!' {
			rule.Ignore = false
			line = line[1:]
		} else if line[0] == '\\' && len(line) > 1 && (line[1] == '#' || line[1] == '!') {
			line = line[1:]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rule.Pattern = line

		g, err := glob.Compile(strings.TrimPrefix(line, "/"))
		if err != nil {
			return nil, xerrors.Errorf("invalid ignore pattern %q: %w", line, err)
		}
		rule.g = g
		rules = append(rules, rule)
	}
	if err := sc.Err(); err != nil {
		return nil, xerrors.Errorf("could not read ignore rules: %w", err)
	}
	return rules, nil
}

// lastMatch returns the polarity of the last rule in rules that
// matches p, and whether any rule matched at all. A rule's pattern is
// matched against the entire relative path with no separator
// restriction, matching librgit's fnmatch(path, pattern) behavior: "*"
// crosses "/" the same as anywhere else in the pattern.
func lastMatch(rules RuleSet, p string) (ignore bool, matched bool) {
	for _, rule := range rules {
		if rule.g.Match(p) {
			ignore = rule.Ignore
			matched = true
		}
	}
	return ignore, matched
}

// Matcher aggregates the absolute (global + repo-local exclude) rule
// files and the scoped (per-directory .gitignore) rule files of a
// repository, and answers ignore queries against them.
type Matcher struct {
	// absolute holds rule-lists in load order: global first, then
	// repo-local (ex. .git/info/exclude)
	absolute []RuleSet
	// scoped holds one rule-list per directory that has its own
	// .gitignore, keyed by repo-relative directory path ("" for root)
	scoped map[string]RuleSet
}

// NewMatcher returns an empty, ready to use Matcher.
func NewMatcher() *Matcher {
	return &Matcher{scoped: map[string]RuleSet{}}
}

// AddAbsolute appends a rule-list to the absolute scope. Call it in
// load order: global config first, then repo-local.
func (m *Matcher) AddAbsolute(rules RuleSet) {
	if len(rules) == 0 {
		return
	}
	m.absolute = append(m.absolute, rules)
}

// AddScoped registers the rules found in dir's .gitignore. dir is a
// repo-relative, UNIX-style directory path ("" for the worktree root).
func (m *Matcher) AddScoped(dir string, rules RuleSet) {
	if len(rules) == 0 {
		return
	}
	m.scoped[dir] = rules
}

// Match returns whether p (a repo-relative, UNIX-style path) is
// ignored. The scoped pass (per-directory .gitignore, walked from the
// path's directory up to the root) takes priority over the absolute
// pass (global and repo-local exclude files).
func (m *Matcher) Match(p string) bool {
	if ignore, ok := m.matchScoped(p); ok {
		return ignore
	}
	return m.matchAbsolute(p)
}

func (m *Matcher) matchScoped(p string) (ignore bool, matched bool) {
	dir := path.Dir(p)
	if dir == "." {
		dir = ""
	}
	for {
		if rules, ok := m.scoped[dir]; ok {
			if ignore, ok := lastMatch(rules, p); ok {
				return ignore, true
			}
		}
		if dir == "" {
			return false, false
		}
		dir = path.Dir(dir)
		if dir == "." {
			dir = ""
		}
	}
}

func (m *Matcher) matchAbsolute(p string) bool {
	var ignore bool
	for _, rules := range m.absolute {
		if ig, ok := lastMatch(rules, p); ok {
			ignore = ig
		}
	}
	return ignore
}
