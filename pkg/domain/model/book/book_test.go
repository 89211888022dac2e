package book_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
)

func TestNew(t *testing.T) {
	t.Run("builds a valid book with generated ID", func(t *testing.T) {
		b, err := book.New(t.Context(), "My best book", "user1@example.com")
		gt.NoError(t, err)
		gt.NoError(t, b.ID.Validate())
		gt.Equal(t, b.Name, "My best book")
		gt.Equal(t, b.User, "user1@example.com")
		gt.Value(t, b.CreatedAt.IsZero()).Equal(false)
	})

	t.Run("allows unowned books", func(t *testing.T) {
		b, err := book.New(t.Context(), "Orphan book", "")
		gt.NoError(t, err)
		gt.Equal(t, b.User, "")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := book.New(t.Context(), "", "user1@example.com")
		gt.Error(t, err)
	})
}

func TestOwned(t *testing.T) {
	b, err := book.New(t.Context(), "My best book", "user1@example.com")
	gt.NoError(t, err)

	gt.Value(t, b.Owned("user1@example.com")).Equal(true)
	gt.Value(t, b.Owned("user2@example.com")).Equal(false)
	gt.Value(t, b.Owned("")).Equal(false)

	orphan, err := book.New(t.Context(), "Orphan book", "")
	gt.NoError(t, err)

	// An unowned book belongs to nobody, including the empty subject
	gt.Value(t, orphan.Owned("")).Equal(false)
	gt.Value(t, orphan.Owned("user1@example.com")).Equal(false)
}
