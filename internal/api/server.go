package api

import (
	"context"

	"fake-auth/internal/config"
	"fake-auth/internal/database"
	"fake-auth/internal/identifier"
	"fake-auth/internal/models"
	"fake-auth/internal/storage"
)

// Store is the slice of the credential store the handlers depend on.
// *database.Store satisfies it; tests substitute in-memory fakes.
type Store interface {
	GetUserByID(ctx context.Context, id identifier.UserID) (*models.User, error)
	GetUsersByToken(ctx context.Context, token identifier.Token) ([]models.User, error)
	ExecTx(ctx context.Context, fn func(database.Querier) error) error
	Ping(ctx context.Context) error
}

var _ Store = (*database.Store)(nil)

type Server struct {
	config *config.Config
	store  Store
	pages  *storage.LocalStorage
}

func NewServer(cfg *config.Config, store Store, pages *storage.LocalStorage) *Server {
	return &Server{
		config: cfg,
		store:  store,
		pages:  pages,
	}
}
