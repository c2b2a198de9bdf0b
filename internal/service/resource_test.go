package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
	repoMocks "github.com/Goutham227347/Ground-Water/internal/repository/mocks"
)

func TestResourceService_LatestOrCompute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -365)

	tests := []struct {
		name       string
		code       string
		setupMocks func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository, mRes *repoMocks.MockResourceRepository)
		wantErr    error
		checkRes   func(t *testing.T, rm *model.ResourceMetrics)
	}{
		{
			name: "returns today's row without recomputing",
			code: "STN1001",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository, mRes *repoMocks.MockResourceRepository) {
				mSt.On("FindByCode", ctx, "STN1001").Return(&model.Station{StationCode: "STN1001"}, nil)
				mRes.On("Latest", ctx, "STN1001").Return(&model.ResourceMetrics{
					ID:              3,
					StationCode:     "STN1001",
					CalculationDate: model.NewDate(now),
				}, nil)
			},
			checkRes: func(t *testing.T, rm *model.ResourceMetrics) {
				assert.Equal(t, int64(3), rm.ID)
			},
		},
		{
			name: "stale calculation triggers a recompute",
			code: "STN1001",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository, mRes *repoMocks.MockResourceRepository) {
				mSt.On("FindByCode", ctx, "STN1001").Return(&model.Station{StationCode: "STN1001", WellDepth: fptr(50)}, nil)
				mRes.On("Latest", ctx, "STN1001").Return(&model.ResourceMetrics{
					ID:              3,
					StationCode:     "STN1001",
					CalculationDate: model.NewDate(now.AddDate(0, 0, -1)),
				}, nil)
				mWl.On("ListRange", ctx, "STN1001", windowStart, now).Return([]model.WaterLevel{
					{StationCode: "STN1001", Timestamp: now.AddDate(0, 0, -30), Depth: 10},
					{StationCode: "STN1001", Timestamp: now.AddDate(0, 0, -1), Depth: 8},
				}, nil)
				mRes.On("Create", ctx, mock.MatchedBy(func(rm *model.ResourceMetrics) bool {
					return rm.StationCode == "STN1001" &&
						rm.CalculationDate.Equal(model.NewDate(now)) &&
						rm.AlertStatus == model.AlertGood
				})).Return(&model.ResourceMetrics{ID: 4, StationCode: "STN1001", AlertStatus: model.AlertGood}, nil)
			},
			checkRes: func(t *testing.T, rm *model.ResourceMetrics) {
				assert.Equal(t, int64(4), rm.ID)
				assert.Equal(t, model.AlertGood, rm.AlertStatus)
			},
		},
		{
			name: "no metrics yet computes the first row",
			code: "STN1002",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository, mRes *repoMocks.MockResourceRepository) {
				mSt.On("FindByCode", ctx, "STN1002").Return(&model.Station{StationCode: "STN1002"}, nil)
				mRes.On("Latest", ctx, "STN1002").Return(nil, sql.ErrNoRows)
				mWl.On("ListRange", ctx, "STN1002", windowStart, now).Return([]model.WaterLevel{}, nil)
				mRes.On("Create", ctx, mock.MatchedBy(func(rm *model.ResourceMetrics) bool {
					return rm.StationCode == "STN1002" &&
						rm.AlertStatus == model.AlertNormal &&
						rm.EstimatedRecharge == nil
				})).Return(&model.ResourceMetrics{ID: 1, StationCode: "STN1002", AlertStatus: model.AlertNormal}, nil)
			},
			checkRes: func(t *testing.T, rm *model.ResourceMetrics) {
				assert.Equal(t, int64(1), rm.ID)
			},
		},
		{
			name: "validation - empty code",
			code: "",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository, mRes *repoMocks.MockResourceRepository) {
			},
			wantErr: ErrCodeRequired,
		},
		{
			name: "unknown station",
			code: "MISSING",
			setupMocks: func(mSt *repoMocks.MockStationRepository, mWl *repoMocks.MockWaterLevelRepository, mRes *repoMocks.MockResourceRepository) {
				mSt.On("FindByCode", ctx, "MISSING").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrStationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mSt := new(repoMocks.MockStationRepository)
			mWl := new(repoMocks.MockWaterLevelRepository)
			mRes := new(repoMocks.MockResourceRepository)
			svc := NewResourceService(mSt, mWl, mRes, clockwork.NewFakeClockAt(now))

			tt.setupMocks(mSt, mWl, mRes)

			rm, err := svc.LatestOrCompute(ctx, tt.code)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				tt.checkRes(t, rm)
			}
			mSt.AssertExpectations(t)
			mWl.AssertExpectations(t)
			mRes.AssertExpectations(t)
		})
	}
}

func TestResourceService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults limit and offset", func(t *testing.T) {
		mRes := new(repoMocks.MockResourceRepository)
		svc := NewResourceService(nil, nil, mRes, clockwork.NewRealClock())

		mRes.On("List", ctx, repository.ResourceFilter{AlertStatus: "critical"}, repository.PageQuery{Limit: 100, Offset: 0}).
			Return(&repository.PageResult[model.ResourceMetrics]{
				Items: []model.ResourceMetrics{{ID: 1}},
				Total: 1,
			}, nil)

		res, err := svc.List(ctx, repository.ResourceFilter{AlertStatus: "critical"}, 0, -1)

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, 1, res.Total)
		mRes.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRes := new(repoMocks.MockResourceRepository)
		svc := NewResourceService(nil, nil, mRes, clockwork.NewRealClock())

		mRes.On("List", ctx, repository.ResourceFilter{}, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(nil, errors.New("db fail"))

		_, err := svc.List(ctx, repository.ResourceFilter{}, 10, 0)
		assert.Error(t, err)
		mRes.AssertExpectations(t)
	})
}

func TestResourceService_Alerts(t *testing.T) {
	ctx := context.Background()

	mRes := new(repoMocks.MockResourceRepository)
	svc := NewResourceService(nil, nil, mRes, clockwork.NewRealClock())

	mRes.On("List", ctx, repository.ResourceFilter{
		AlertStatuses: []string{"critical", "warning"},
	}, repository.PageQuery{Limit: 1000, Offset: 0}).
		Return(&repository.PageResult[model.ResourceMetrics]{
			Items: []model.ResourceMetrics{
				{ID: 2, AlertStatus: model.AlertCritical},
				{ID: 1, AlertStatus: model.AlertWarning},
			},
			Total: 2,
		}, nil)

	rows, err := svc.Alerts(ctx)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, model.AlertCritical, rows[0].AlertStatus)
	mRes.AssertExpectations(t)
}
