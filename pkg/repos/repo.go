package repos

import (
	"fmt"
	"sync"
)

var (
	ErrEmptyRepoID   = fmt.Errorf("repo id is empty")
	ErrDuplicateRepo = fmt.Errorf("duplicate repo")
)

// Repo is a configured package source.
type Repo struct {
	ID      string
	Name    string
	BaseURL string
	Enabled bool
	Proxy   string

	mu sync.RWMutex
	// extra "<Field-Name>: <value>" lines sent with every request to the repo, guarded by mu
	httpHeaders []string
}

// Headers returns a copy of the repo's extra HTTP header lines.
func (r *Repo) Headers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.httpHeaders...)
}

// SetHeaders replaces the repo's extra HTTP header lines.
func (r *Repo) SetHeaders(headers []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.httpHeaders = append([]string{}, headers...)
}

// Dict is the ordered registry of configured repos, keyed by ID.
type Dict struct {
	mu      sync.RWMutex
	matcher Matcher
	order   []string
	repos   map[string]*Repo
}

// NewDict creates an empty registry. A nil matcher selects GlobMatcher.
func NewDict(matcher Matcher) *Dict {
	if matcher == nil {
		matcher = GlobMatcher{}
	}
	return &Dict{
		matcher: matcher,
		repos:   make(map[string]*Repo),
	}
}

func (d *Dict) Add(r *Repo) error {
	if r == nil || r.ID == "" {
		return ErrEmptyRepoID
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.repos[r.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRepo, r.ID)
	}
	d.repos[r.ID] = r
	d.order = append(d.order, r.ID)
	return nil
}

func (d *Dict) Get(id string) (*Repo, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.repos[id]
	return r, ok
}

// All returns the repos in insertion order.
func (d *Dict) All() []*Repo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	all := make([]*Repo, 0, len(d.order))
	for _, id := range d.order {
		all = append(all, d.repos[id])
	}
	return all
}

func (d *Dict) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// GetMatching returns a view of the repos whose ID matches pattern.
// The view shares entries with the registry, so mutations through it are visible here.
func (d *Dict) GetMatching(pattern string) *Set {
	d.mu.RLock()
	defer d.mu.RUnlock()
	set := &Set{}
	for _, id := range d.order {
		r := d.repos[id]
		if d.matcher.Match(id, pattern) {
			set.repos = append(set.repos, r)
		}
	}
	return set
}

// Set is a subset view of a Dict.
type Set struct {
	repos []*Repo
}

func (s *Set) Len() int {
	return len(s.repos)
}

func (s *Set) Repos() []*Repo {
	return append([]*Repo{}, s.repos...)
}

func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.repos))
	for _, r := range s.repos {
		ids = append(ids, r.ID)
	}
	return ids
}

// SetHTTPHeaders replaces the header list of every repo in the set.
func (s *Set) SetHTTPHeaders(headers []string) {
	for _, r := range s.repos {
		r.SetHeaders(headers)
	}
}
