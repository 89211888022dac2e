package interfaces

import (
	"context"

	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
)

// Repository is the production-facing book store contract. Each operation is
// individually atomic; no cross-operation transaction is provided. Test-only
// reset helpers live on the concrete implementations, not here.
type Repository interface {
	PutBook(ctx context.Context, b *book.Book) error
	GetBook(ctx context.Context, id types.BookID) (*book.Book, error)
	ListBooks(ctx context.Context) ([]*book.Book, error)
	DeleteBook(ctx context.Context, id types.BookID) error
}
