package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
)

// CreateBook builds a book with a fresh ID and stores it. The user argument is
// the owner subject; an empty user produces an unowned record, which only the
// direct repository path can create in practice since the HTTP surface always
// passes the authenticated subject.
func (u *UseCases) CreateBook(ctx context.Context, name, user string) (*book.Book, error) {
	b, err := book.New(ctx, name, user)
	if err != nil {
		return nil, err
	}

	if err := u.repo.PutBook(ctx, b); err != nil {
		return nil, goerr.Wrap(err, "failed to store book", goerr.V("book_id", b.ID))
	}

	return b, nil
}

// ListOwnedBooks returns the books owned by sub. Unowned books and books of
// other subjects are excluded. An empty result is not an error.
func (u *UseCases) ListOwnedBooks(ctx context.Context, sub string) ([]*book.Book, error) {
	all, err := u.repo.ListBooks(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list books")
	}

	owned := make([]*book.Book, 0, len(all))
	for _, b := range all {
		if b.Owned(sub) {
			owned = append(owned, b)
		}
	}

	return owned, nil
}

// GetOwnedBook returns the book only if sub owns it. A book owned by another
// subject yields the same not-found error as an absent ID, so record existence
// does not leak across users.
func (u *UseCases) GetOwnedBook(ctx context.Context, sub string, id types.BookID) (*book.Book, error) {
	b, err := u.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.Owned(sub) {
		return nil, goerr.New("book not found",
			goerr.T(errs.TagNotFound),
			goerr.V("book_id", id))
	}

	return b, nil
}

// DeleteOwnedBook deletes the book only if sub owns it, with the same
// not-found shape as GetOwnedBook for both missing and foreign records. The
// store is left untouched unless the ownership check passes.
func (u *UseCases) DeleteOwnedBook(ctx context.Context, sub string, id types.BookID) error {
	b, err := u.repo.GetBook(ctx, id)
	if err != nil {
		return err
	}

	if !b.Owned(sub) {
		return goerr.New("book not found",
			goerr.T(errs.TagNotFound),
			goerr.V("book_id", id))
	}

	return u.repo.DeleteBook(ctx, id)
}
