package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
)

func TestAddOrderRatingRollingAverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cafe := seedCafe(t, env.db, true)
	item := seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)

	ratings := []int{5, 3, 4, 1, 2}
	sum := 0
	var last float64
	for i, r := range ratings {
		order := env.placedOrder(t, cafe.ID, i+1, LineInput{ItemID: item.ID, Quantity: 1})
		env.setStatus(t, order.ID, models.StatusCompleted)

		avg, err := env.ratings.AddOrderRating(ctx, order.ID, r)
		require.NoError(t, err)
		sum += r
		assert.InDelta(t, float64(sum)/float64(i+1), avg, 1e-9)
		last = avg
	}

	var reloaded models.Cafe
	require.NoError(t, env.db.First(&reloaded, "id = ?", cafe.ID).Error)
	assert.InDelta(t, 3.0, reloaded.Rating, 1e-9)
	assert.InDelta(t, last, reloaded.Rating, 1e-9)
	assert.Equal(t, len(ratings), reloaded.RatingCount)
}

func TestAddOrderRatingOutOfRangeLeavesCafe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cafe := seedCafe(t, env.db, true)
	item := seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)
	order := env.placedOrder(t, cafe.ID, 1, LineInput{ItemID: item.ID, Quantity: 1})
	env.setStatus(t, order.ID, models.StatusCompleted)

	for _, r := range []int{0, 6, -1} {
		_, err := env.ratings.AddOrderRating(ctx, order.ID, r)
		assert.True(t, errors.Is(err, utils.ErrInvalidRating))
	}

	var reloaded models.Cafe
	require.NoError(t, env.db.First(&reloaded, "id = ?", cafe.ID).Error)
	assert.Zero(t, reloaded.Rating)
	assert.Zero(t, reloaded.RatingCount)

	got, err := env.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

func TestAddOrderRatingRequiresCompletedAndOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cafe := seedCafe(t, env.db, true)
	item := seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)
	order := env.placedOrder(t, cafe.ID, 1, LineInput{ItemID: item.ID, Quantity: 1})

	_, err := env.ratings.AddOrderRating(ctx, order.ID, 4)
	assert.True(t, errors.Is(err, utils.ErrNotCompleted))

	env.setStatus(t, order.ID, models.StatusCompleted)
	_, err = env.ratings.AddOrderRating(ctx, order.ID, 4)
	require.NoError(t, err)

	_, err = env.ratings.AddOrderRating(ctx, order.ID, 2)
	assert.True(t, errors.Is(err, utils.ErrAlreadyRated))

	var reloaded models.Cafe
	require.NoError(t, env.db.First(&reloaded, "id = ?", cafe.ID).Error)
	assert.Equal(t, 1, reloaded.RatingCount)
	assert.InDelta(t, 4.0, reloaded.Rating, 1e-9)

	_, err = env.ratings.AddOrderRating(ctx, "missing", 3)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestAddItemRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cafe := seedCafe(t, env.db, true)
	item := seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)

	var lineIDs []string
	for i := 0; i < 3; i++ {
		order := env.placedOrder(t, cafe.ID, i+1, LineInput{ItemID: item.ID, Quantity: 1})
		env.setStatus(t, order.ID, models.StatusCompleted)
		lineIDs = append(lineIDs, order.OrderItems[0].ID)
	}

	for i, r := range []int{2, 4, 5} {
		_, err := env.ratings.AddItemRating(ctx, lineIDs[i], r)
		require.NoError(t, err)
	}

	var reloaded models.Item
	require.NoError(t, env.db.First(&reloaded, "id = ?", item.ID).Error)
	assert.InDelta(t, 11.0/3.0, reloaded.Rating, 1e-9)
	assert.Equal(t, 3, reloaded.RatingCount)

	_, err := env.ratings.AddItemRating(ctx, lineIDs[0], 1)
	assert.True(t, errors.Is(err, utils.ErrAlreadyRated))

	_, err = env.ratings.AddItemRating(ctx, lineIDs[0], 9)
	assert.True(t, errors.Is(err, utils.ErrInvalidRating))

	_, err = env.ratings.AddItemRating(ctx, "missing", 3)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestReviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cafe := seedCafe(t, env.db, true)
	item := seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)
	order := env.placedOrder(t, cafe.ID, 1, LineInput{ItemID: item.ID, Quantity: 1})

	_, err := env.ratings.AddOrderReview(ctx, order.ID, "great")
	assert.True(t, errors.Is(err, utils.ErrNotCompleted))

	env.setStatus(t, order.ID, models.StatusCompleted)
	_, err = env.ratings.AddOrderReview(ctx, order.ID, "great")
	require.NoError(t, err)
	review, err := env.ratings.AddOrderReview(ctx, order.ID, "great chai")
	require.NoError(t, err)
	assert.Equal(t, "great chai", review)

	_, err = env.ratings.AddItemReview(ctx, order.OrderItems[0].ID, "strong")
	require.NoError(t, err)

	got, err := env.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Review)
	assert.Equal(t, "great chai", *got.Review)
	require.NotNil(t, got.OrderItems[0].Review)
	assert.Equal(t, "strong", *got.OrderItems[0].Review)
}

func TestOrderForReview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cafe := seedCafe(t, env.db, true)
	item := seedItem(t, env.db, cafe.ID, "Masala Chai", 100, true)
	order := env.placedOrder(t, cafe.ID, 1, LineInput{ItemID: item.ID, Quantity: 2})

	sheet, err := env.ratings.OrderForReview(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, sheet.Order)
	require.Len(t, sheet.ItemsToReview, 1)
	assert.Equal(t, "Masala Chai", sheet.ItemsToReview[0].Name)
	assert.Equal(t, order.OrderItems[0].ID, sheet.ItemsToReview[0].ID)

	env.setStatus(t, order.ID, models.StatusCompleted)
	_, err = env.ratings.AddOrderRating(ctx, order.ID, 5)
	require.NoError(t, err)
	_, err = env.ratings.OrderForReview(ctx, order.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, empty, err := env.sessions.CreateSession(ctx, cafe.ID, 2)
	require.NoError(t, err)
	_, err = env.ratings.OrderForReview(ctx, empty.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
