package service

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/pkg/dbmetrics"
	"github.com/lumibook/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий услуг компании
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает услуги компании по списку ID в порядке запрошенных ID.
// Если хотя бы одна услуга не найдена или принадлежит другой компании -
// ErrServiceNotFound: чужие услуги никогда не участвуют в расчете длительности.
func (r *Repository) GetByIDs(ctx context.Context, companyID int64, ids []int64) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "company_id", "name", "price", "duration_min").
		From("services").
		Where(squirrel.Eq{
			"id":         ids,
			"company_id": companyID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Service, len(ids))
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.CompanyID, &svc.Name, &svc.Price, &svc.DurationMin); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		byID[svc.ID] = &svc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	// Восстанавливаем порядок запрошенных ID и проверяем полноту
	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		services = append(services, svc)
	}

	return services, nil
}
