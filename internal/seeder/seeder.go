package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/eklix/mysql-faker/internal/database/mysql"
	"go.uber.org/zap"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Tx is the transaction rows are written through.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Commit() error
	Rollback() error
}

// Generator produces one synthetic row per call.
type Generator interface {
	Post() Post
}

type Seeder struct {
	tx        Tx
	generator Generator
	table     string
	qb        squirrel.StatementBuilderType
	logger    *zap.Logger
}

func New(tx Tx, generator Generator, table string, logger *zap.Logger) (*Seeder, error) {
	if !validIdentifier.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		tx:        tx,
		generator: generator,
		table:     table,
		qb:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger:    logger.With(zap.String("table", table)),
	}, nil
}

// Seed optionally clears the table, inserts cfg.Rows generated rows and
// commits once. A row that fails to insert is logged and skipped; only setup
// and commit errors abort the run.
func (s *Seeder) Seed(ctx context.Context, cfg SeedConfig) (*Report, error) {
	start := time.Now()
	report := &Report{Requested: cfg.Rows}

	if cfg.Clean {
		deleted, err := s.clean(ctx)
		if err != nil {
			s.rollback()
			return report, err
		}
		report.Cleaned = true
		report.Deleted = deleted
	}

	s.logger.Info("beginning data creation", zap.Int("rows", cfg.Rows))

	for i := 1; i <= cfg.Rows; i++ {
		if err := ctx.Err(); err != nil {
			s.rollback()
			return report, err
		}

		if err := s.insert(ctx, s.generator.Post()); err != nil {
			report.Failed++
			s.logger.Warn("failed to insert row", zap.Int("row", i), zap.Error(err))
			continue
		}
		report.Inserted++
	}

	if err := s.tx.Commit(); err != nil {
		return report, fmt.Errorf("failed to commit transaction: %w", err)
	}

	report.Duration = time.Since(start)
	s.logger.Info("finished creating records",
		zap.Int("inserted", report.Inserted),
		zap.Int("failed", report.Failed),
		zap.Duration("took", report.Duration),
	)
	return report, nil
}

// clean deletes every row of the table. A missing table is not an error.
func (s *Seeder) clean(ctx context.Context) (int64, error) {
	query, args, err := s.qb.Delete(s.table).ToSql()
	if err != nil {
		return 0, err
	}

	result, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		if mysql.IsMissingTable(err) {
			s.logger.Warn("table does not exist, nothing to clean", zap.Error(err))
			return 0, nil
		}
		return 0, fmt.Errorf("there was a problem deleting the existing %s table records: %w", s.table, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	s.logger.Info("cleaned table", zap.Int64("deleted", deleted))
	return deleted, nil
}

func (s *Seeder) insert(ctx context.Context, post Post) error {
	query, args, err := s.qb.Insert(s.table).
		Columns(post.Columns()...).
		Values(post.Values()...).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.tx.ExecContext(ctx, query, args...)
	return err
}

func (s *Seeder) rollback() {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.Warn("rollback failed", zap.Error(err))
	}
}
