package interfaces

import (
	"context"

	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
)

// BookUsecases covers creation plus the ownership-scoped read/delete
// operations. The *Owned operations never report "forbidden": a record that
// exists but belongs to another subject is indistinguishable from one that
// does not exist.
type BookUsecases interface {
	CreateBook(ctx context.Context, name, user string) (*book.Book, error)
	ListOwnedBooks(ctx context.Context, sub string) ([]*book.Book, error)
	GetOwnedBook(ctx context.Context, sub string, id types.BookID) (*book.Book, error)
	DeleteOwnedBook(ctx context.Context, sub string, id types.BookID) error
}
