package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/house_help/internal/models"
)

func newTestReviewEnv(t *testing.T) (*ReviewService, *UnlockService) {
	t.Helper()
	r := newTestRepo(t)
	return &ReviewService{Repo: r}, &UnlockService{Repo: r, Tariff: 99}
}

func TestReviewService_RequiresUnlock(t *testing.T) {
	reviews, unlocks := newTestReviewEnv(t)
	ctx := context.Background()

	user := seedUser(t, reviews.Repo, "9876543210")
	worker := seedWorker(t, reviews.Repo, "9123456789")

	_, err := reviews.Submit(ctx, user.ID, worker.ID, 5, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotUnlocked)

	_, err = unlocks.Unlock(ctx, user.ID, worker.ID, "pay_001")
	require.NoError(t, err)

	review, err := reviews.Submit(ctx, user.ID, worker.ID, 5, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_RejectsOutOfRangeRating(t *testing.T) {
	reviews, _ := newTestReviewEnv(t)
	ctx := context.Background()

	user := seedUser(t, reviews.Repo, "9876543210")
	worker := seedWorker(t, reviews.Repo, "9123456789")

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := reviews.Submit(ctx, user.ID, worker.ID, rating, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestReviewService_OneReviewPerPair(t *testing.T) {
	reviews, unlocks := newTestReviewEnv(t)
	ctx := context.Background()

	user := seedUser(t, reviews.Repo, "9876543210")
	worker := seedWorker(t, reviews.Repo, "9123456789")

	_, err := unlocks.Unlock(ctx, user.ID, worker.ID, "pay_001")
	require.NoError(t, err)

	_, err = reviews.Submit(ctx, user.ID, worker.ID, 4, nil, nil)
	require.NoError(t, err)

	_, err = reviews.Submit(ctx, user.ID, worker.ID, 5, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateReview)

	var rows []models.Review
	require.NoError(t, reviews.Repo.DB.Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestReviewService_AggregateRecompute(t *testing.T) {
	reviews, unlocks := newTestReviewEnv(t)
	ctx := context.Background()

	userA := seedUser(t, reviews.Repo, "9876543210")
	userB := seedUser(t, reviews.Repo, "9876543211")
	worker := seedWorker(t, reviews.Repo, "9123456789")

	_, err := unlocks.Unlock(ctx, userA.ID, worker.ID, "pay_a")
	require.NoError(t, err)
	_, err = unlocks.Unlock(ctx, userB.ID, worker.ID, "pay_b")
	require.NoError(t, err)

	_, err = reviews.Submit(ctx, userA.ID, worker.ID, 5, nil, nil)
	require.NoError(t, err)

	fresh, err := reviews.Repo.FindWorkerByID(ctx, worker.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fresh.RatingAvg, 0.001)
	assert.Equal(t, 1, fresh.RatingCount)

	_, err = reviews.Submit(ctx, userB.ID, worker.ID, 4, nil, nil)
	require.NoError(t, err)

	fresh, err = reviews.Repo.FindWorkerByID(ctx, worker.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, fresh.RatingAvg, 0.001)
	assert.Equal(t, 2, fresh.RatingCount)
}

func TestReviewService_AggregateOrderIndependent(t *testing.T) {
	// Same review set in the opposite order lands on the same aggregate.
	reviews, unlocks := newTestReviewEnv(t)
	ctx := context.Background()

	userA := seedUser(t, reviews.Repo, "9876543210")
	userB := seedUser(t, reviews.Repo, "9876543211")
	worker := seedWorker(t, reviews.Repo, "9123456789")

	_, err := unlocks.Unlock(ctx, userA.ID, worker.ID, "pay_a")
	require.NoError(t, err)
	_, err = unlocks.Unlock(ctx, userB.ID, worker.ID, "pay_b")
	require.NoError(t, err)

	_, err = reviews.Submit(ctx, userB.ID, worker.ID, 4, nil, nil)
	require.NoError(t, err)
	_, err = reviews.Submit(ctx, userA.ID, worker.ID, 5, nil, nil)
	require.NoError(t, err)

	fresh, err := reviews.Repo.FindWorkerByID(ctx, worker.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, fresh.RatingAvg, 0.001)
	assert.Equal(t, 2, fresh.RatingCount)
}

func TestReviewService_CommentAndTagsStored(t *testing.T) {
	reviews, unlocks := newTestReviewEnv(t)
	ctx := context.Background()

	user := seedUser(t, reviews.Repo, "9876543210")
	worker := seedWorker(t, reviews.Repo, "9123456789")

	_, err := unlocks.Unlock(ctx, user.ID, worker.ID, "pay_001")
	require.NoError(t, err)

	comment := "punctual and thorough"
	tags := "punctual,polite"
	review, err := reviews.Submit(ctx, user.ID, worker.ID, 5, &comment, &tags)
	require.NoError(t, err)
	require.NotNil(t, review.Comment)
	assert.Equal(t, comment, *review.Comment)
	require.NotNil(t, review.Tags)
	assert.Equal(t, tags, *review.Tags)
}
