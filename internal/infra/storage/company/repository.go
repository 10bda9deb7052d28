package company

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

// Repository репозиторий компаний (тенантов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDomain находит компанию по доменному имени.
// Домен - внешний идентификатор тенанта: каждый публичный запрос
// начинается с этого lookup.
func (r *Repository) GetByDomain(ctx context.Context, domainName string) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "domain", "timezone", "created_at").
		From("companies").
		Where(squirrel.Eq{"domain": domainName}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDomain - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCompany(executor.QueryRowContext(ctx, query, args...))
}

// GetByID находит компанию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "domain", "timezone", "created_at").
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCompany(executor.QueryRowContext(ctx, query, args...))
}

func (r *Repository) scanCompany(row *sql.Row) (*domain.Company, error) {
	var company domain.Company
	var timezone sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Domain,
		&timezone,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan company: %v", ErrScanRow, err)
	}

	company.Timezone = timezone.String
	company.CreatedAt = createdAt.Time

	return &company, nil
}
