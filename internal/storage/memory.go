package storage

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
)

// Record is one row of an in-memory repository.
type Record map[string]any

// Repository is an in-memory table. Columns are declared so that an empty
// repository still knows its properties.
type Repository struct {
	Columns []string
	Records []Record
}

// MemoryStore keeps repositories in memory, in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	repos map[string]*Repository
	opts  Options
}

func NewMemoryStore(repos map[string]Repository, opts Options) *MemoryStore {
	s := &MemoryStore{
		repos: make(map[string]*Repository, len(repos)),
		opts:  opts.withDefaults(),
	}
	for name, repo := range repos {
		r := repo
		s.repos[name] = &r
	}
	return s
}

// Insert appends records to a repository, creating it with the given
// columns if needed.
func (s *MemoryStore) Insert(repository string, columns []string, records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.repos[repository]
	if !ok {
		repo = &Repository{}
		s.repos[repository] = repo
	}
	for _, c := range columns {
		if !slices.Contains(repo.Columns, c) {
			repo.Columns = append(repo.Columns, c)
		}
	}
	repo.Records = append(repo.Records, records...)
}

func (s *MemoryStore) Initialize(ctx context.Context) error {
	if s.opts.TenantID == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	repo, ok := s.repos[s.opts.TenantTable]
	if !ok {
		return fmt.Errorf("tenant table %q: %w", s.opts.TenantTable, ErrNotFound)
	}
	for _, rec := range repo.Records {
		if matchesTenant(rec["id"], s.opts.TenantID) {
			return nil
		}
	}
	return fmt.Errorf("unable to fetch website %d: %w", s.opts.TenantID, ErrNotFound)
}

func (s *MemoryStore) FetchValues(ctx context.Context, repository, property string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	repo, ok := s.repos[repository]
	if !ok {
		return nil, fmt.Errorf("repository %q: %w", repository, ErrNotFound)
	}
	if !slices.Contains(repo.Columns, property) {
		return nil, fmt.Errorf("property %q of repository %q: %w", property, repository, ErrNotFound)
	}

	filter := s.opts.TenantID != 0 && slices.Contains(repo.Columns, s.opts.TenantColumn)

	values := make([]string, 0, len(repo.Records))
	for i, rec := range repo.Records {
		if filter && !matchesTenant(rec[s.opts.TenantColumn], s.opts.TenantID) {
			continue
		}
		v, ok := rec[property]
		if !ok || v == nil {
			return nil, fmt.Errorf("%s.%s record %d: %w", repository, property, i+1, ErrNullValue)
		}
		values = append(values, fmt.Sprint(v))
	}

	return values, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func matchesTenant(v any, id int64) bool {
	return v != nil && fmt.Sprint(v) == strconv.FormatInt(id, 10)
}
