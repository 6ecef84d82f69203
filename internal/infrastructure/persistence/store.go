package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store - PostgreSQL реализация repository.Store поверх sqlx.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func repositoriesFor(ext sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		Profiles: NewProfileRepositoryAdapter(ext),
		Projects: NewProjectRepositoryAdapter(ext),
		Bids:     NewBidRepositoryAdapter(ext),
		Orders:   NewOrderRepositoryAdapter(ext),
	}
}

func (s *Store) Repositories() repository.Repositories {
	return repositoriesFor(s.db)
}

// WithinTx выполняет fn внутри транзакции READ COMMITTED. Гарантии движка держатся на
// условных UPDATE и уникальных индексах, поэтому более строгая изоляция не требуется.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, repositoriesFor(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const uniqueViolation = "23505"

// uniqueConstraint возвращает имя нарушенного уникального ограничения, если ошибка - 23505.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
