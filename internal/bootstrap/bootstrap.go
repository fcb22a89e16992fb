package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/eklix/mysql-faker/internal/database/mysql"
	"go.uber.org/zap"
)

// ErrDeclined is returned when the database is missing and the user chose not
// to create it. It is not a failure.
var ErrDeclined = errors.New("the database doesn't exist and you've chosen to not create it")

// Catalog selects and creates databases on the pinned connection.
type Catalog interface {
	UseDatabase(ctx context.Context, name string) error
	CreateDatabase(ctx context.Context, name string) error
}

type Confirmer interface {
	Confirm(message string) (bool, error)
}

type Bootstrapper struct {
	catalog    Catalog
	confirmer  Confirmer
	autoCreate bool
	logger     *zap.Logger
}

func New(catalog Catalog, confirmer Confirmer, autoCreate bool, logger *zap.Logger) *Bootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrapper{
		catalog:    catalog,
		confirmer:  confirmer,
		autoCreate: autoCreate,
		logger:     logger,
	}
}

// EnsureDatabase scopes the session to name, creating the database when it is
// missing and creation is allowed. created reports whether it had to be made.
func (b *Bootstrapper) EnsureDatabase(ctx context.Context, name string) (created bool, err error) {
	err = b.catalog.UseDatabase(ctx, name)
	if err == nil {
		b.logger.Debug("using existing database", zap.String("database", name))
		return false, nil
	}
	if !mysql.IsUnknownDatabase(err) {
		return false, err
	}

	b.logger.Info("database does not exist", zap.String("database", name), zap.Bool("auto_create", b.autoCreate))

	if !b.autoCreate {
		ok, err := b.confirmer.Confirm("Your database doesn't exist, would you like to create it")
		if err != nil {
			return false, err
		}
		if !ok {
			return false, ErrDeclined
		}
	}

	if err := b.catalog.CreateDatabase(ctx, name); err != nil {
		return false, fmt.Errorf("wasn't able to create the database: %w", err)
	}
	if err := b.catalog.UseDatabase(ctx, name); err != nil {
		return true, fmt.Errorf("wasn't able to use the created database: %w", err)
	}

	b.logger.Info("created database", zap.String("database", name))
	return true, nil
}
