package book

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
	"github.com/valtteripyyhtia/book-library/pkg/utils/clock"
)

// Book is a single record in the library. User is the owner subject and is
// empty for records that were inserted without an authenticated caller.
type Book struct {
	ID        types.BookID `json:"id" firestore:"id"`
	Name      string       `json:"name" firestore:"name"`
	User      string       `json:"user,omitempty" firestore:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at" firestore:"created_at"`
}

// New builds a validated book with a freshly generated ID. The ID is immutable
// after this point.
func New(ctx context.Context, name, user string) (*Book, error) {
	b := &Book{
		ID:        types.NewBookID(),
		Name:      name,
		User:      user,
		CreatedAt: clock.Now(ctx),
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (x *Book) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid book ID", goerr.T(errs.TagValidation))
	}
	if x.Name == "" {
		return goerr.New("empty book name", goerr.T(errs.TagValidation))
	}
	return nil
}

// Owned reports whether the book belongs to the given subject. Books without
// an owner belong to nobody, not everybody.
func (x *Book) Owned(sub string) bool {
	return x.User != "" && x.User == sub
}
