package repository_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
	"github.com/valtteripyyhtia/book-library/pkg/repository"
	"github.com/valtteripyyhtia/book-library/pkg/utils/test"
)

func newFirestoreClient(t *testing.T) *repository.Firestore {
	vars := test.NewEnvVars(t, "TEST_FIRESTORE_PROJECT_ID", "TEST_FIRESTORE_DATABASE_ID")
	client, err := repository.NewFirestore(t.Context(),
		vars.Get("TEST_FIRESTORE_PROJECT_ID"),
		vars.Get("TEST_FIRESTORE_DATABASE_ID"),
	)
	gt.NoError(t, err).Required()
	return client
}

func TestBook(t *testing.T) {
	testFn := func(t *testing.T, repo interfaces.Repository) {
		ctx := t.Context()

		b, err := book.New(ctx, "Test Book", "user1@example.com")
		gt.NoError(t, err)

		// PutBook
		gt.NoError(t, repo.PutBook(ctx, b))

		// GetBook
		got, err := repo.GetBook(ctx, b.ID)
		gt.NoError(t, err)
		gt.Value(t, got.ID).Equal(b.ID)
		gt.Value(t, got.Name).Equal(b.Name)
		gt.Value(t, got.User).Equal(b.User)

		// Overwrite with the same ID is silent
		updated := *b
		updated.Name = "Renamed Book"
		gt.NoError(t, repo.PutBook(ctx, &updated))

		got, err = repo.GetBook(ctx, b.ID)
		gt.NoError(t, err)
		gt.Value(t, got.Name).Equal("Renamed Book")

		// DeleteBook
		gt.NoError(t, repo.DeleteBook(ctx, b.ID))

		// Both lookup and delete fail after removal
		_, err = repo.GetBook(ctx, b.ID)
		gt.Error(t, err)
		gt.Error(t, repo.DeleteBook(ctx, b.ID))

		// Unknown but well-formed IDs behave the same
		_, err = repo.GetBook(ctx, types.NewBookID())
		gt.Error(t, err)
	}

	t.Run("Memory", func(t *testing.T) {
		repo := repository.NewMemory()
		testFn(t, repo)
	})

	t.Run("Firestore", func(t *testing.T) {
		repo := newFirestoreClient(t)
		testFn(t, repo)
	})
}

func TestMemoryList(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewMemory()

	names := []string{"First", "Second", "Third"}
	ids := make([]types.BookID, 0, len(names))
	for _, name := range names {
		b, err := book.New(ctx, name, "user1@example.com")
		gt.NoError(t, err)
		gt.NoError(t, repo.PutBook(ctx, b))
		ids = append(ids, b.ID)
	}

	books, err := repo.ListBooks(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(books), 3)

	// Listing is ordered by ID for deterministic assertions
	for i := 1; i < len(books); i++ {
		gt.Value(t, books[i-1].ID < books[i].ID).Equal(true)
	}

	gt.NoError(t, repo.DeleteBook(ctx, ids[1]))
	books, err = repo.ListBooks(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(books), 2)

	repo.Clear()
	books, err = repo.ListBooks(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(books), 0)
}

func TestMemoryCopies(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewMemory()

	b, err := book.New(ctx, "Test Book", "user1@example.com")
	gt.NoError(t, err)
	gt.NoError(t, repo.PutBook(ctx, b))

	// Mutating the caller's record must not affect the stored one
	b.Name = "Mutated"

	got, err := repo.GetBook(ctx, b.ID)
	gt.NoError(t, err)
	gt.Value(t, got.Name).Equal("Test Book")

	// Mutating a returned record must not affect the stored one either
	got.Name = "Mutated again"

	again, err := repo.GetBook(ctx, b.ID)
	gt.NoError(t, err)
	gt.Value(t, again.Name).Equal("Test Book")
}
