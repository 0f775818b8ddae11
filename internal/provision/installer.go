// Package provision creates and removes the credential store schema, seeds
// it with fake users and renders the landing page that links to them.
package provision

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"fake-auth/internal/database"
	"fake-auth/internal/models"
	"fake-auth/internal/storage"

	log "github.com/sirupsen/logrus"
)

type Store interface {
	Migrate(ctx context.Context) error
	Reset(ctx context.Context) error
	ExecTx(ctx context.Context, fn func(database.Querier) error) error
}

type UserSource interface {
	FetchUsers(ctx context.Context, count int) ([]models.User, error)
}

type PageWriter interface {
	Save(name string, data io.Reader) error
	Delete(name string) error
}

type Installer struct {
	store     Store
	source    UserSource
	pages     PageWriter
	userCount int
}

func NewInstaller(store Store, source UserSource, pages PageWriter, userCount int) *Installer {
	return &Installer{
		store:     store,
		source:    source,
		pages:     pages,
		userCount: userCount,
	}
}

// Install creates the tables, seeds them and writes the landing page. It
// returns the seeded users.
func (i *Installer) Install(ctx context.Context) ([]models.User, error) {
	if err := i.store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}
	log.Info("Tables created")

	users, err := i.source.FetchUsers(ctx, i.userCount)
	if err != nil {
		return nil, fmt.Errorf("fetch fake users: %w", err)
	}
	log.Infof("Fetched %d fake users", len(users))

	err = i.store.ExecTx(ctx, func(q database.Querier) error {
		n, err := q.InsertUsers(ctx, users)
		if err != nil {
			return err
		}
		if int(n) != len(users) {
			return fmt.Errorf("inserted %d of %d users", n, len(users))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert fake users: %w", err)
	}

	var page bytes.Buffer
	if err := RenderIndex(&page, users); err != nil {
		return nil, fmt.Errorf("render landing page: %w", err)
	}
	if err := i.pages.Save(storage.IndexPage, &page); err != nil {
		return nil, fmt.Errorf("write landing page: %w", err)
	}
	log.Info("Landing page written")

	return users, nil
}

// Uninstall drops both tables and removes the landing page.
func (i *Installer) Uninstall(ctx context.Context) error {
	if err := i.store.Reset(ctx); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	log.Info("Dropped tables")

	if err := i.pages.Delete(storage.IndexPage); err != nil {
		return fmt.Errorf("remove landing page: %w", err)
	}
	log.Info("Landing page removed")
	return nil
}
