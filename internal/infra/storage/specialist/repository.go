package specialist

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

// Repository репозиторий специалистов компании
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID возвращает специалиста компании.
// Специалист чужой компании неотличим от несуществующего.
func (r *Repository) GetByID(ctx context.Context, id, companyID int64) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "company_id", "name", "phone", "role").
		From("specialists").
		Where(squirrel.Eq{
			"id":         id,
			"company_id": companyID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var spec domain.Specialist
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&spec.ID,
		&spec.CompanyID,
		&spec.Name,
		&spec.Phone,
		&spec.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specialist: %v", ErrScanRow, err)
	}

	return &spec, nil
}
