package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Firestore struct {
	db *firestore.Client
}

var _ interfaces.Repository = &Firestore{}

const collectionBooks = "books"

func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	db, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	return &Firestore{
		db: db,
	}, nil
}

func (r *Firestore) Close() error {
	return r.db.Close()
}

func (r *Firestore) PutBook(ctx context.Context, b *book.Book) error {
	if err := b.Validate(); err != nil {
		return goerr.Wrap(err, "invalid book")
	}

	doc := r.db.Collection(collectionBooks).Doc(b.ID.String())
	if _, err := doc.Set(ctx, b); err != nil {
		return goerr.Wrap(err, "failed to put book",
			goerr.T(errs.TagDatabase),
			goerr.V("book_id", b.ID))
	}
	return nil
}

func (r *Firestore) GetBook(ctx context.Context, id types.BookID) (*book.Book, error) {
	doc, err := r.db.Collection(collectionBooks).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("book not found",
				goerr.T(errs.TagNotFound),
				goerr.V("book_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get book",
			goerr.T(errs.TagDatabase),
			goerr.V("book_id", id))
	}

	var b book.Book
	if err := doc.DataTo(&b); err != nil {
		return nil, goerr.Wrap(err, "failed to convert data to book",
			goerr.T(errs.TagDatabase),
			goerr.V("book_id", id))
	}

	b.ID = id // Set the ID from the document key
	return &b, nil
}

func (r *Firestore) ListBooks(ctx context.Context) ([]*book.Book, error) {
	iter := r.db.Collection(collectionBooks).Documents(ctx)
	defer iter.Stop()

	var books []*book.Book
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate books", goerr.T(errs.TagDatabase))
		}

		var b book.Book
		if err := doc.DataTo(&b); err != nil {
			return nil, goerr.Wrap(err, "failed to convert data to book",
				goerr.T(errs.TagDatabase),
				goerr.V("doc_id", doc.Ref.ID))
		}
		b.ID = types.BookID(doc.Ref.ID)
		books = append(books, &b)
	}

	return books, nil
}

func (r *Firestore) DeleteBook(ctx context.Context, id types.BookID) error {
	doc := r.db.Collection(collectionBooks).Doc(id.String())

	// Firestore deletes are no-ops for missing documents, so check existence
	// first to honor the not-found contract.
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("book not found",
				goerr.T(errs.TagNotFound),
				goerr.V("book_id", id))
		}
		return goerr.Wrap(err, "failed to get book",
			goerr.T(errs.TagDatabase),
			goerr.V("book_id", id))
	}

	if _, err := doc.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete book",
			goerr.T(errs.TagDatabase),
			goerr.V("book_id", id))
	}
	return nil
}
