package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AB-BookingService/internal/domain"
	workBlockRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/workblock"
	"github.com/agendahub/AB-BookingService/internal/service/schedule/models"
)

type fakeWorkBlockRepo struct {
	nextID int64
	blocks map[int64]*domain.WorkBlock
	inUse  map[int64]bool
}

func (f *fakeWorkBlockRepo) Create(_ context.Context, block *domain.WorkBlock) (*domain.WorkBlock, error) {
	f.nextID++
	block.ID = f.nextID
	f.blocks[block.ID] = block
	return block, nil
}

func (f *fakeWorkBlockRepo) GetByID(_ context.Context, id int64) (*domain.WorkBlock, error) {
	block, ok := f.blocks[id]
	if !ok {
		return nil, workBlockRepo.ErrWorkBlockNotFound
	}
	return block, nil
}

func (f *fakeWorkBlockRepo) GetByDay(_ context.Context, dayOfWeek int) ([]*domain.WorkBlock, error) {
	result := make([]*domain.WorkBlock, 0)
	for _, block := range f.blocks {
		if block.DayOfWeek == dayOfWeek {
			result = append(result, block)
		}
	}
	return result, nil
}

func (f *fakeWorkBlockRepo) List(_ context.Context) ([]*domain.WorkBlock, error) {
	result := make([]*domain.WorkBlock, 0, len(f.blocks))
	for _, block := range f.blocks {
		result = append(result, block)
	}
	return result, nil
}

func (f *fakeWorkBlockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.blocks[id]; !ok {
		return workBlockRepo.ErrWorkBlockNotFound
	}
	if f.inUse[id] {
		return workBlockRepo.ErrWorkBlockInUse
	}
	delete(f.blocks, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeWorkBlockRepo) {
	repo := &fakeWorkBlockRepo{blocks: map[int64]*domain.WorkBlock{}}
	return NewService(repo, nopLogger{}), repo
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday,
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "13:00", resp.EndTime)
}

func TestCreate_OverlapRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "09:00", EndTime: "13:00",
	})
	require.NoError(t, err)

	// Частичное пересечение
	_, err = svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "12:00", EndTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrWorkBlockOverlap)

	// Граничащий блок пересечением не считается
	_, err = svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "13:00", EndTime: "18:00",
	})
	assert.NoError(t, err)

	// Тот же интервал в другой день разрешен
	_, err = svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayTuesday, StartTime: "09:00", EndTime: "13:00",
	})
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: 7, StartTime: "09:00", EndTime: "13:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "13:00", EndTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "9am", EndTime: "13:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "09:00", EndTime: "13:00",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.blocks)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrWorkBlockNotFound)
}

func TestDelete_BlockInUse(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateWorkBlockRequest{
		DayOfWeek: domain.DayMonday, StartTime: "09:00", EndTime: "13:00",
	})
	require.NoError(t, err)

	repo.inUse = map[int64]bool{created.ID: true}

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrWorkBlockInUse)
	assert.Len(t, repo.blocks, 1)
}
