package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type BookID string

func (x BookID) String() string {
	return string(x)
}

func NewBookID() BookID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return BookID(id.String())
}

func (x BookID) Validate() error {
	if x == EmptyBookID {
		return goerr.New("empty book ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid book ID format", goerr.V("id", x))
	}
	return nil
}

const (
	EmptyBookID BookID = ""
)
