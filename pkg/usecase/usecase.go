package usecase

import (
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/repository"
)

type UseCases struct {
	repo interfaces.Repository
}

var _ interfaces.BookUsecases = &UseCases{}

type Option func(*UseCases)

func WithRepository(repo interfaces.Repository) Option {
	return func(u *UseCases) {
		u.repo = repo
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{
		repo: repository.NewMemory(),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}
