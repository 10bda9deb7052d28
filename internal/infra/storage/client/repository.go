package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/dbmetrics"
	"github.com/lumibook/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий клиентов компании
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID возвращает клиента компании.
// Клиент чужой компании неотличим от несуществующего.
func (r *Repository) GetByID(ctx context.Context, id, companyID int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "company_id", "name", "phone").
		From("clients").
		Where(squirrel.Eq{
			"id":         id,
			"company_id": companyID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.CompanyID,
		&c.Name,
		&c.Phone,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	return &c, nil
}
