package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"leedz/config"
	"leedz/infras/otel/mocks"
	bookingMocks "leedz/internal/domains/booking/mocks"
	"leedz/internal/domains/booking/model"
	"leedz/internal/domains/booking/model/dto"
	"leedz/internal/domains/booking/service"
	cacheMocks "leedz/shared/cache/mocks"
	gModel "leedz/shared/model"
	"leedz/shared/timezone"
)

func TestBookingService_GetByClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	bookings := []model.Booking{
		{
			ID:        "newer-id",
			ClientID:  "client-id",
			Title:     "Kitchen remodel",
			StartDate: "2026-09-14",
			Status:    "saved",
			Metadata: gModel.Metadata{
				CreatedAt: timezone.Now(),
				UpdatedAt: timezone.Now(),
			},
		},
		{
			ID:       "older-id",
			ClientID: "client-id",
			Title:    "Deck repair",
			Status:   "closed",
			Metadata: gModel.Metadata{
				CreatedAt: timezone.Now(),
				UpdatedAt: timezone.Now(),
			},
		},
	}

	saved := make(chan struct{}, 4)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantIDs   []string
		async     bool
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*[]dto.BookingResponse)) = []dto.BookingResponse{{ID: "cached-id"}}
						return nil
					})
			},
			wantIDs: []string{"cached-id"},
		},
		{
			name: "cache miss, loaded from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookings, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, string, any, int) error {
						saved <- struct{}{}
						return nil
					})
			},
			wantIDs: []string{"newer-id", "older-id"},
			async:   true,
		},
		{
			name: "no bookings",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, string, any, int) error {
						saved <- struct{}{}
						return nil
					})
			},
			wantIDs: []string{},
			async:   true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			res, err := svc.GetByClient(ctx, "client-id")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, res, len(tt.wantIDs))

			for i, id := range tt.wantIDs {
				assert.Equal(t, id, res[i].ID)
			}

			if tt.async {
				<-saved
			}
		})
	}
}
