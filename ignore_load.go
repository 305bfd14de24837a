package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brodalo/gogit/env"
	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ignore"
	"github.com/brodalo/gogit/index"
	"github.com/spf13/afero"
)

// LoadIgnoreMatcher builds the Matcher used by status and
// check-ignore. The absolute scope holds, in load order, the global
// ignore file (honoring $XDG_CONFIG_HOME, falling back to
// ~/.config, per spec §9) and the repo-local .git/info/exclude. The
// scoped scope holds every .gitignore tracked in idx, keyed by its
// containing directory.
func (r *Repository) LoadIgnoreMatcher(e *env.Env, idx *index.Index) (*ignore.Matcher, error) {
	m := ignore.NewMatcher()
	fs := r.fs()

	globalPath, err := globalIgnorePath(e)
	if err != nil {
		return nil, fmt.Errorf("could not locate global ignore file: %w", err)
	}
	globalRules, err := readRuleSetIfExists(fs, globalPath)
	if err != nil {
		return nil, err
	}
	m.AddAbsolute(globalRules)

	localRules, err := readRuleSetIfExists(fs, ginternals.ExcludePath(r.Config))
	if err != nil {
		return nil, err
	}
	m.AddAbsolute(localRules)

	for _, entry := range idx.Entries {
		if entry.Path != ".gitignore" && !strings.HasSuffix(entry.Path, "/.gitignore") {
			continue
		}
		o, err := r.Object(entry.OID)
		if err != nil {
			return nil, fmt.Errorf("could not load %s: %w", entry.Path, err)
		}
		rules, err := ignore.ParseRuleSet(bytes.NewReader(o.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", entry.Path, err)
		}
		m.AddScoped(dirOf(entry.Path), rules)
	}

	return m, nil
}

// globalIgnorePath mirrors the source's gitignore_read(): the global
// ignore file lives at $XDG_CONFIG_HOME/git/ignore, falling back to
// ~/.config/git/ignore when the variable isn't set.
func globalIgnorePath(e *env.Env) (string, error) {
	configHome := e.Get("XDG_CONFIG_HOME")
	if configHome == "" {
		home := e.Get("HOME")
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return "", err
			}
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "git", "ignore"), nil
}

// readRuleSetIfExists returns an empty rule-set, rather than an
// error, when p doesn't exist: global/exclude ignore files are
// optional.
func readRuleSetIfExists(fs afero.Fs, p string) (ignore.RuleSet, error) {
	f, err := fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open %s: %w", p, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	rules, err := ignore.ParseRuleSet(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", p, err)
	}
	return rules, nil
}
