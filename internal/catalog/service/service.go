package service

import (
	"context"
	"errors"

	"github.com/askbook/askbook-api/internal/catalog"
	"github.com/askbook/askbook-api/internal/catalog/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Lookup outcomes that are not failures of the store. Their text is returned to callers.
var (
	ErrNoMatches = errors.New("No matching books found.")
	ErrNotFound  = errors.New("Book not found")
)

// Repository is the document-store surface the catalog reads from.
type Repository interface {
	Find(ctx context.Context, f catalog.Filter) ([]catalog.Book, error)
	Get(ctx context.Context, id string) (catalog.Book, error)
}

// Service defines the catalog query operations used by the handler layer.
// It never creates or mutates records.
type Service interface {
	List(ctx context.Context, f catalog.Filter) ([]catalog.Book, error)
	Get(ctx context.Context, id string) (catalog.Book, error)
}

// NewMemoryService returns a Service backed by the given in-memory repository.
func NewMemoryService(repo *repository.MemoryRepo) Service {
	return &catalogService{repo: repo}
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection) Service {
	return &catalogService{repo: repository.NewMongoRepo(col)}
}

// NewService wraps an arbitrary repository.
func NewService(repo Repository) Service {
	return &catalogService{repo: repo}
}

type catalogService struct {
	repo Repository
}

// List returns every record matching all filters, or ErrNoMatches when there is none.
func (s *catalogService) List(ctx context.Context, f catalog.Filter) ([]catalog.Book, error) {
	books, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoMatches
	}
	return books, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (catalog.Book, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
