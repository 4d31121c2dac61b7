package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/recommend"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "repeated", in: []string{"sofa", "table"}, want: []string{"sofa", "table"}},
		{name: "comma separated", in: []string{"sofa, table", "chair"}, want: []string{"sofa", "table", "chair"}},
		{name: "blanks dropped", in: []string{" , ", "bed,"}, want: []string{"bed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.in))
		})
	}
}

func TestParseBatch(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		requests, err := parseBatch([]byte(`[{"name":"a","roomType":"bedroom"},{"name":"b","detected":["sofa"]}]`))
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, model.RoomTypeBedroom, requests[0].RoomType)
		assert.Equal(t, []string{"sofa"}, requests[1].Detected)
	})

	t.Run("single object", func(t *testing.T) {
		requests, err := parseBatch([]byte(`{"name":"solo","roomType":"home_office","budget":{"amount":900,"currency":"SGD"}}`))
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, "solo", requests[0].Name)
		require.NotNil(t, requests[0].Budget)
		assert.InDelta(t, 900, requests[0].Budget.Amount, 1e-9)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseBatch([]byte(`not json`))
		require.Error(t, err)
	})
}

func TestBatchOutput(t *testing.T) {
	results := []recommend.BatchResult{
		{Index: 0, Name: "ok", Result: model.RecommendationResult{Strategy: model.StrategyRuleBased, TotalPrice: 10}},
		{Index: 1, Name: "bad", Error: errors.New("boom")},
	}

	out := batchOutput(results)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Result)
	assert.InDelta(t, 10, out[0].Result.TotalPrice, 1e-9)
	assert.Empty(t, out[0].Error)
	assert.Nil(t, out[1].Result)
	assert.Equal(t, "boom", out[1].Error)
}

func TestRequestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantUser bool
	}{
		{name: "invalid request", err: common.ErrInvalidRequest, wantUser: true},
		{name: "bad dimensions", err: common.ErrUnsupportedDimensions, wantUser: true},
		{name: "empty catalog", err: common.ErrNoProducts, wantUser: true},
		{name: "other", err: errors.New("disk on fire"), wantUser: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requestError(tt.err)
			var userErr *common.UserError
			assert.Equal(t, tt.wantUser, errors.As(err, &userErr))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
