package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
)

type Memory struct {
	mu    sync.RWMutex
	books map[types.BookID]*book.Book
}

var _ interfaces.Repository = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		books: make(map[types.BookID]*book.Book),
	}
}

// PutBook stores the book keyed by its ID. An existing record with the same ID
// is overwritten silently.
func (r *Memory) PutBook(ctx context.Context, b *book.Book) error {
	if err := b.Validate(); err != nil {
		return goerr.Wrap(err, "invalid book")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modification
	bookCopy := *b
	r.books[b.ID] = &bookCopy

	return nil
}

func (r *Memory) GetBook(ctx context.Context, id types.BookID) (*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, goerr.New("book not found",
			goerr.T(errs.TagNotFound),
			goerr.V("book_id", id))
	}

	// Return a copy to prevent external modification
	bookCopy := *b
	return &bookCopy, nil
}

// ListBooks returns all stored books ordered by ID so that listings are
// deterministic for a given store content.
func (r *Memory) ListBooks(ctx context.Context) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		bookCopy := *b
		books = append(books, &bookCopy)
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].ID < books[j].ID
	})

	return books, nil
}

func (r *Memory) DeleteBook(ctx context.Context, id types.BookID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return goerr.New("book not found",
			goerr.T(errs.TagNotFound),
			goerr.V("book_id", id))
	}

	delete(r.books, id)
	return nil
}

// Clear removes all books. It is a test isolation helper and is deliberately
// absent from interfaces.Repository.
func (r *Memory) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = make(map[types.BookID]*book.Book)
}
