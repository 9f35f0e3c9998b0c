package shared_test

import (
	"context"
	"errors"
	"testing"

	"turfbook/shared"
	cacheMocks "turfbook/shared/cache/mocks"
	gDto "turfbook/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "slot:day", shared.BuildCacheKey("slot:day"))
	assert.Equal(t, "slot:day:t-1:2024-06-10", shared.BuildCacheKey("slot:day", "t-1", "2024-06-10"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: "created_by", Value: "user-1", Operator: gDto.FilterOperatorEq},
		},
	}
	other := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: "created_by", Value: "user-2", Operator: gDto.FilterOperatorEq},
		},
	}

	key := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, key, shared.BuildCacheKeyWithQuery("booking:gets", params, filter))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("booking:gets", params, other))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("booking:gets", gDto.QueryParams{Page: 2, Limit: 10}, filter))
	assert.Regexp(t, `^booking:gets:[0-9a-f]{40}$`, key)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "booking:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "booking:count")
}
