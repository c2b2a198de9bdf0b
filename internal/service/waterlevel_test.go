package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
	repoMocks "github.com/Goutham227347/Ground-Water/internal/repository/mocks"
)

func TestWaterLevelService_ListByStation(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		code       string
		from, to   *time.Time
		limit      int
		setupMocks func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository)
		wantErr    error
		wantLen    int
	}{
		{
			name:  "happy path with range",
			code:  "STN1001",
			from:  &from,
			to:    &to,
			limit: 50,
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository) {
				mSt.On("FindByCode", ctx, "STN1001").Return(&model.Station{StationCode: "STN1001"}, nil)
				mWl.On("ListByStation", ctx, "STN1001", repository.WaterLevelFilter{From: &from, To: &to}, 50).
					Return([]model.WaterLevel{{ID: 1}, {ID: 2}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "zero limit falls back to 1000",
			code: "STN1001",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository) {
				mSt.On("FindByCode", ctx, "STN1001").Return(&model.Station{StationCode: "STN1001"}, nil)
				mWl.On("ListByStation", ctx, "STN1001", repository.WaterLevelFilter{}, 1000).
					Return([]model.WaterLevel{}, nil)
			},
			wantLen: 0,
		},
		{
			name:       "validation - empty code",
			code:       "",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository) {},
			wantErr:    ErrCodeRequired,
		},
		{
			name: "unknown station",
			code: "MISSING",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository) {
				mSt.On("FindByCode", ctx, "MISSING").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrStationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mSt := new(repoMocks.MockStationRepository)
			mWl := new(repoMocks.MockWaterLevelRepository)
			svc := NewWaterLevelService(mSt, mWl)

			tt.setupMocks(mSt, mWl)

			levels, err := svc.ListByStation(ctx, tt.code, tt.from, tt.to, tt.limit)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Len(t, levels, tt.wantLen)
			}
			mSt.AssertExpectations(t)
			mWl.AssertExpectations(t)
		})
	}
}

func TestWaterLevelService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults limit and offset", func(t *testing.T) {
		mWl := new(repoMocks.MockWaterLevelRepository)
		svc := NewWaterLevelService(nil, mWl)

		mWl.On("List", ctx, repository.WaterLevelFilter{StationCode: "STN1001"}, repository.PageQuery{Limit: 100, Offset: 0}).
			Return(&repository.PageResult[model.WaterLevel]{
				Items: []model.WaterLevel{{ID: 3}},
				Total: 41,
			}, nil)

		res, err := svc.List(ctx, repository.WaterLevelFilter{StationCode: "STN1001"}, 0, -5)

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, 41, res.Total)
		mWl.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mWl := new(repoMocks.MockWaterLevelRepository)
		svc := NewWaterLevelService(nil, mWl)

		mWl.On("List", ctx, repository.WaterLevelFilter{}, repository.PageQuery{Limit: 25, Offset: 50}).
			Return(nil, errors.New("db fail"))

		_, err := svc.List(ctx, repository.WaterLevelFilter{}, 25, 50)
		assert.Error(t, err)
		mWl.AssertExpectations(t)
	})
}
