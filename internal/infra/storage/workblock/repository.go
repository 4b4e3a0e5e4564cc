package workblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agendahub/AB-BookingService/internal/domain"
	"github.com/agendahub/AB-BookingService/pkg/psqlbuilder"
	"github.com/agendahub/AB-BookingService/pkg/txmanager"
)

const pqForeignKeyViolation = pq.ErrorCode("23503")

var workBlockColumns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с рабочими блоками (еженедельными окнами)
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих блоков
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый рабочий блок
func (r *Repository) Create(ctx context.Context, block *domain.WorkBlock) (*domain.WorkBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("work_blocks").
		Columns("day_of_week", "start_time", "end_time").
		Values(block.DayOfWeek, block.StartTime, block.EndTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// GetByID получает рабочий блок по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workBlockColumns...).
		From("work_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	block, err := scanWorkBlock(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrWorkBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan work block: %v", ErrScanRow, err)
	}

	return block, nil
}

// GetByDay получает все рабочие блоки на день недели, отсортированные по началу
func (r *Repository) GetByDay(ctx context.Context, dayOfWeek int) ([]*domain.WorkBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workBlockColumns...).
		From("work_blocks").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWorkBlocks(rows)
}

// List получает все рабочие блоки, отсортированные по дню недели и началу
func (r *Repository) List(ctx context.Context) ([]*domain.WorkBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workBlockColumns...).
		From("work_blocks").
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWorkBlocks(rows)
}

// Delete удаляет рабочий блок
// Блок, на который ссылаются бронирования, удалить нельзя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("work_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrWorkBlockInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWorkBlockNotFound
	}

	return nil
}

func scanWorkBlock(scan func(dest ...interface{}) error) (*domain.WorkBlock, error) {
	var block domain.WorkBlock
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&block.ID,
		&block.DayOfWeek,
		&block.StartTime,
		&block.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return &block, nil
}

func scanWorkBlocks(rows *sql.Rows) ([]*domain.WorkBlock, error) {
	blocks := make([]*domain.WorkBlock, 0)

	for rows.Next() {
		block, err := scanWorkBlock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWorkBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWorkBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
