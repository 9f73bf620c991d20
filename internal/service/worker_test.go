package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/house_help/internal/repo"
)

func TestWorkerService_Register(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	user := seedUser(t, svc.Repo, "9876543210")

	worker, err := svc.Register(ctx, user, WorkerInput{
		Name:           "Lakshmi",
		Category:       "cook",
		City:           "Bengaluru",
		ExpectedSalary: 12000,
	})
	require.NoError(t, err)
	assert.Equal(t, user.Phone, worker.Phone)

	fresh, err := svc.Repo.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsWorker)
	assert.Equal(t, "worker", fresh.Role)
	require.NotNil(t, fresh.WorkerID)
	assert.Equal(t, worker.ID, *fresh.WorkerID)
}

func TestWorkerService_Register_Twice(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	user := seedUser(t, svc.Repo, "9876543210")

	_, err := svc.Register(ctx, user, WorkerInput{
		Name: "Lakshmi", Category: "cook", City: "Bengaluru", ExpectedSalary: 12000,
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, user, WorkerInput{
		Name: "Lakshmi", Category: "maid", City: "Bengaluru", ExpectedSalary: 10000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestWorkerService_Register_PhoneAlreadyTaken(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	// A worker profile already carries this phone.
	seedWorker(t, svc.Repo, "9876543210")
	user := seedUser(t, svc.Repo, "9876543210")

	_, err := svc.Register(ctx, user, WorkerInput{
		Name: "Someone", Category: "cook", City: "Bengaluru", ExpectedSalary: 12000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestWorkerService_Update(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	user := seedUser(t, svc.Repo, "9876543210")
	_, err := svc.Register(ctx, user, WorkerInput{
		Name: "Lakshmi", Category: "cook", City: "Bengaluru", ExpectedSalary: 12000,
	})
	require.NoError(t, err)

	newSalary := 15000
	newCity := "Mumbai"
	worker, err := svc.Update(ctx, user, WorkerUpdate{
		ExpectedSalary: &newSalary,
		City:           &newCity,
	})
	require.NoError(t, err)
	assert.Equal(t, 15000, worker.ExpectedSalary)
	assert.Equal(t, "Mumbai", worker.City)
	assert.Equal(t, "cook", worker.Category)
}

func TestWorkerService_SetAvailability(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	user := seedUser(t, svc.Repo, "9876543210")
	_, err := svc.Register(ctx, user, WorkerInput{
		Name: "Lakshmi", Category: "cook", City: "Bengaluru", ExpectedSalary: 12000,
	})
	require.NoError(t, err)

	from := "07:00"
	to := "13:00"
	worker, err := svc.SetAvailability(ctx, user, false, &from, &to)
	require.NoError(t, err)
	assert.False(t, worker.IsAvailable)
	require.NotNil(t, worker.AvailableFrom)
	assert.Equal(t, "07:00", *worker.AvailableFrom)
}

func TestWorkerService_ListFilters(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	cook := seedWorker(t, svc.Repo, "9123456789")
	maid := seedWorker(t, svc.Repo, "9123456780")
	maid.Category = "maid"
	maid.ExpectedSalary = 8000
	require.NoError(t, svc.Repo.SaveWorker(ctx, maid))

	elsewhere := seedWorker(t, svc.Repo, "9123456781")
	elsewhere.City = "Delhi"
	require.NoError(t, svc.Repo.SaveWorker(ctx, elsewhere))

	all, err := svc.List(ctx, repo.WorkerFilter{City: "Bengaluru"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cooks, err := svc.List(ctx, repo.WorkerFilter{City: "Bengaluru", Category: "cook"})
	require.NoError(t, err)
	require.Len(t, cooks, 1)
	assert.Equal(t, cook.ID, cooks[0].ID)

	cheap, err := svc.List(ctx, repo.WorkerFilter{City: "Bengaluru", MaxSalary: 10000})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, maid.ID, cheap[0].ID)
}

func TestWorkerService_ListOrdersByRating(t *testing.T) {
	svc := &WorkerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	low := seedWorker(t, svc.Repo, "9123456789")
	high := seedWorker(t, svc.Repo, "9123456780")
	require.NoError(t, svc.Repo.UpdateWorkerRating(ctx, low.ID, 3.2, 5))
	require.NoError(t, svc.Repo.UpdateWorkerRating(ctx, high.ID, 4.8, 12))

	workers, err := svc.List(ctx, repo.WorkerFilter{City: "Bengaluru"})
	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, high.ID, workers[0].ID)
	assert.Equal(t, low.ID, workers[1].ID)
}
