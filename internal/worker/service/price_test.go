package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"sui-smart/internal/worker/model"
)

func pts(ts ...int64) []model.PricePoint {
	out := make([]model.PricePoint, len(ts))
	for i, t := range ts {
		out[i] = model.PricePoint{Timestamp: t, Price: decimal.NewFromInt(t)}
	}
	return out
}

func TestNearestPointEmpty(t *testing.T) {
	assert.Nil(t, NearestPoint(100, nil))
	assert.Nil(t, NearestPoint(100, []model.PricePoint{}))
}

func TestNearestPointExact(t *testing.T) {
	p := NearestPoint(20, pts(10, 20, 30))
	assert.NotNil(t, p)
	assert.Equal(t, int64(20), p.Timestamp)
}

func TestNearestPointBetween(t *testing.T) {
	p := NearestPoint(26, pts(10, 20, 30))
	assert.Equal(t, int64(30), p.Timestamp)

	p = NearestPoint(23, pts(10, 20, 30))
	assert.Equal(t, int64(20), p.Timestamp)
}

func TestNearestPointTiePrefersEarlier(t *testing.T) {
	p := NearestPoint(25, pts(20, 30))
	assert.Equal(t, int64(20), p.Timestamp)

	p = NearestPoint(20, pts(10, 30, 31))
	assert.Equal(t, int64(10), p.Timestamp)
}

func TestNearestPointOutOfRange(t *testing.T) {
	p := NearestPoint(5, pts(10, 20, 30))
	assert.Equal(t, int64(10), p.Timestamp)

	p = NearestPoint(100, pts(10, 20, 30))
	assert.Equal(t, int64(30), p.Timestamp)
}
