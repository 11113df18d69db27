package repos

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/match"
)

// Matcher decides whether a repo identifier is selected by a pattern.
type Matcher interface {
	Match(name, pattern string) bool
}

type MatchFunc func(name, pattern string) bool

func (f MatchFunc) Match(name, pattern string) bool {
	return f(name, pattern)
}

// GlobMatcher matches with '*' (any substring) and '?' (any single character) only.
// Unlike fnmatch there are no "[seq]" classes: '[' is literal and '\\' escapes the next character.
// Matching is case-sensitive.
type GlobMatcher struct{}

var _ Matcher = GlobMatcher{}

func (GlobMatcher) Match(name, pattern string) bool {
	return match.Match(name, pattern)
}

type FixedMatcher bool

var _ Matcher = (FixedMatcher)(false)

func (m FixedMatcher) Match(name, pattern string) bool {
	return bool(m)
}

const (
	AlwaysMatch = FixedMatcher(true)
	NeverMatch  = FixedMatcher(false)
)

// ExprMatcher treats the pattern as an expr-lang boolean expression over the repo identifier,
// exposed to the expression as `id`, e.g. `id contains "getpagespeed" && id != "getpagespeed-testing"`.
// Compile results, failures included, are cached per pattern.
type ExprMatcher struct {
	mu    sync.Mutex
	progs map[string]*compiledExpr
}

type compiledExpr struct {
	prog *vm.Program
	err  error
}

var _ Matcher = (*ExprMatcher)(nil)

// Compile checks that code is a valid expression, caching the result.
func (m *ExprMatcher) Compile(code string) error {
	_, err := m.program(code)
	return err
}

func (m *ExprMatcher) Match(name, pattern string) bool {
	prog, err := m.program(pattern)
	if err != nil {
		return false
	}

	output, err := expr.Run(prog, map[string]any{"id": name})
	if err != nil {
		logrus.Warnf("[expr-matcher] run expr (%s) failed: %v", pattern, err)
		return false
	}

	switch v := output.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		logrus.Warnf("[expr-matcher] expr (%s) invalid return type: %T", pattern, v)
		return false
	}
}

func (m *ExprMatcher) program(code string) (*vm.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.progs[code]; ok {
		return c.prog, c.err
	}
	prog, err := expr.Compile(code, expr.Env(map[string]any{"id": ""}))
	if err != nil {
		logrus.Warnf("[expr-matcher] compile expr (%s) failed: %v", code, err)
		err = fmt.Errorf("compile expr %q: %w", code, err)
	}
	if m.progs == nil {
		m.progs = make(map[string]*compiledExpr)
	}
	m.progs[code] = &compiledExpr{prog: prog, err: err}
	return prog, err
}
