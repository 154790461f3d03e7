package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"leedz/config"
	"leedz/infras/otel/mocks"
	bookingMocks "leedz/internal/domains/booking/mocks"
	bookingModel "leedz/internal/domains/booking/model"
	bookingDto "leedz/internal/domains/booking/model/dto"
	clientMocks "leedz/internal/domains/client/mocks"
	clientModel "leedz/internal/domains/client/model"
	clientDto "leedz/internal/domains/client/model/dto"
	"leedz/internal/domains/record/model/dto"
	"leedz/internal/domains/record/service"
	cacheMocks "leedz/shared/cache/mocks"
	"leedz/shared/failure"
	gModel "leedz/shared/model"
	"leedz/shared/timezone"
)

func TestRecordService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClients := clientMocks.NewMockClient(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockClients, mockBookings, cfg, mockCache, mockOtel)

	// Saves invalidate caches on a goroutine; the channel lets each success
	// case wait for the three prefix clears before the controller finishes.
	cleared := make(chan string, 16)
	expectInvalidation := func() {
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, prefix string) error {
				cleared <- prefix
				return nil
			}).
			Times(3)
	}
	awaitInvalidation := func() {
		for i := 0; i < 3; i++ {
			<-cleared
		}
	}

	tests := []struct {
		name         string
		req          dto.SaveRecordRequest
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantClientID string
		wantBooking  bool
		async        bool
	}{
		{
			name: "new client inserted",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					Name:  "Dana Brooks",
					Email: "Dana@Example.com",
				},
			},
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any(), clientModel.FieldID).
					Return(clientModel.Client{}, nil)

				mockClients.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod clientModel.Client) error {
						assert.Equal(t, "dana@example.com", mod.Email)
						assert.NotEmpty(t, mod.ID)
						return nil
					})

				expectInvalidation()
			},
			async: true,
		},
		{
			name: "existing client matched by email",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					Name:  "Dana Brooks",
					Email: "dana@example.com",
					Phone: "555-0100",
				},
			},
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any(), clientModel.FieldID).
					Return(clientModel.Client{ID: "existing-id"}, nil)

				mockClients.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				expectInvalidation()
			},
			wantClientID: "existing-id",
			async:        true,
		},
		{
			name: "client id not found",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					ID:   "2f1f9a64-47a5-4b6e-9a3f-0c57f7b43a10",
					Name: "Dana Brooks",
				},
			},
			setupMock: func() {
				mockClients.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking inserted alongside client",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					Name: "Dana Brooks",
				},
				Booking: &bookingDto.BookingPayload{
					Title:     "Kitchen remodel",
					StartDate: "2026-09-14",
				},
			},
			setupMock: func() {
				mockClients.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockBookings.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod bookingModel.Booking) error {
						assert.NotEmpty(t, mod.ClientID)
						assert.NotEmpty(t, mod.ID)
						return nil
					})

				expectInvalidation()
			},
			wantBooking: true,
			async:       true,
		},
		{
			name: "booking id not found",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					Email: "dana@example.com",
				},
				Booking: &bookingDto.BookingPayload{
					ID:    "8e9e47c0-b1de-4a76-a3cd-2b3a9f0f7c21",
					Title: "Kitchen remodel",
				},
			},
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any(), clientModel.FieldID).
					Return(clientModel.Client{ID: "existing-id"}, nil)

				mockClients.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockBookings.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "anonymous client rejected",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					Phone: "555-0100",
				},
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "email lookup error",
			req: dto.SaveRecordRequest{
				Client: clientDto.ClientPayload{
					Email: "dana@example.com",
				},
			},
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any(), clientModel.FieldID).
					Return(clientModel.Client{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			res, err := svc.Save(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ClientID)

			if tt.wantClientID != "" {
				assert.Equal(t, tt.wantClientID, res.ClientID)
			}
			if tt.wantBooking {
				assert.NotEmpty(t, res.BookingID)
			} else {
				assert.Empty(t, res.BookingID)
			}

			if tt.async {
				awaitInvalidation()
			}
		})
	}
}

func TestRecordService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClients := clientMocks.NewMockClient(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockClients, mockBookings, cfg, mockCache, mockOtel)

	client := clientModel.Client{
		ID:    "client-id",
		Name:  "Dana Brooks",
		Email: "dana@example.com",
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}

	booking := bookingModel.Booking{
		ID:        "booking-id",
		ClientID:  "client-id",
		Title:     "Kitchen remodel",
		StartDate: "2026-09-14",
		Status:    "saved",
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}

	tests := []struct {
		name        string
		setupMock   func()
		wantErr     bool
		wantNil     bool
		wantBooking bool
	}{
		{
			name: "record with latest booking",
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(client, nil)

				mockBookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]bookingModel.Booking{booking}, nil)
			},
			wantBooking: true,
		},
		{
			name: "record without bookings",
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(client, nil)

				mockBookings.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
		},
		{
			name: "unknown client yields no record",
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(clientModel.Client{}, nil)
			},
			wantNil: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockClients.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(clientModel.Client{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			res, err := svc.Load(ctx, "client-id")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, res)
				return
			}

			assert.Equal(t, "client-id", res.Client.ID)

			if tt.wantBooking {
				assert.Equal(t, "booking-id", res.Booking.ID)
			} else {
				assert.Nil(t, res.Booking)
			}
		})
	}
}
