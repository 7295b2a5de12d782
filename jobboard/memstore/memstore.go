// Package memstore keeps every job board entity in process memory. It backs
// the memory storage driver and the service tests, and mirrors the postgres
// schema's constraints: unique (posting, applicant) and (user, posting)
// pairs, category references cleared on category delete, bookmarks removed
// with their posting, and company names resolved on read.
package memstore

import (
	"context"
	"sync"

	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users        map[kernel.UserID]*account.User
	categories   map[kernel.JobCategoryID]jobcategory.JobCategory
	postings     map[kernel.JobPostingID]jobposting.JobPosting
	applications map[kernel.ApplicationID]application.Application
	bookmarks    map[kernel.BookmarkID]bookmark.Bookmark

	nextCategoryID    int64
	nextPostingID     int64
	nextApplicationID int64
	nextBookmarkID    int64
}

func New() *Store {
	return &Store{
		users:        make(map[kernel.UserID]*account.User),
		categories:   make(map[kernel.JobCategoryID]jobcategory.JobCategory),
		postings:     make(map[kernel.JobPostingID]jobposting.JobPosting),
		applications: make(map[kernel.ApplicationID]application.Application),
		bookmarks:    make(map[kernel.BookmarkID]bookmark.Bookmark),
	}
}

func (s *Store) Accounts() *AccountRepository         { return &AccountRepository{s: s} }
func (s *Store) Categories() *CategoryRepository      { return &CategoryRepository{s: s} }
func (s *Store) Postings() *PostingRepository         { return &PostingRepository{s: s} }
func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s: s} }
func (s *Store) Bookmarks() *BookmarkRepository       { return &BookmarkRepository{s: s} }

// AddUser registers an account. Accounts come from the identity service, so
// the store only offers this for seeding.
func (s *Store) AddUser(u *account.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// ============================================================================
// Transactions
// ============================================================================

type txKey struct{}

// txState collects the undo steps of the writes made inside one transaction.
type txState struct {
	undo []func()
}

// WithinTx serializes transactions. When fn fails only the writes made
// through fn's ctx are undone; writes committed by other callers meanwhile
// are kept. Ids handed out inside a failed transaction are not reused, the
// same as a postgres sequence.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txState{}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		s.rollback(tx)
		return err
	}
	return nil
}

func (s *Store) rollback(tx *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
}

// onRollback registers undo to run if ctx's transaction fails. Outside a
// transaction the write is final. Callers hold s.mu.
func onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.undo = append(tx.undo, undo)
	}
}

// keepKey registers the restoration of m[k] to its current value.
func keepKey[K comparable, V any](ctx context.Context, m map[K]V, k K) {
	prev, had := m[k]
	onRollback(ctx, func() {
		if had {
			m[k] = prev
		} else {
			delete(m, k)
		}
	})
}

// withCompany fills the display name. Callers hold s.mu.
func (s *Store) withCompany(p jobposting.JobPosting) jobposting.JobPosting {
	if u, ok := s.users[p.CompanyID]; ok && u.IsCompany() {
		p.CompanyName = u.Company.Name
	}
	return p
}
