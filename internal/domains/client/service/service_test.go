package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"leedz/config"
	"leedz/infras/otel/mocks"
	clientMocks "leedz/internal/domains/client/mocks"
	"leedz/internal/domains/client/model"
	"leedz/internal/domains/client/model/dto"
	"leedz/internal/domains/client/service"
	cacheMocks "leedz/shared/cache/mocks"
	gModel "leedz/shared/model"
	"leedz/shared/timezone"
)

func TestClientService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := clientMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	found := model.Client{
		ID:    "client-id",
		Name:  "Dana Brooks",
		Email: "dana@example.com",
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}

	// Cache writes happen on a goroutine; successful lookups wait on this
	// channel so the expectation is satisfied before the controller finishes.
	saved := make(chan struct{}, 8)
	expectCacheSave := func() {
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, any, int) error {
				saved <- struct{}{}
				return nil
			})
	}

	tests := []struct {
		name      string
		email     string
		query     string
		setupMock func()
		wantErr   bool
		wantNil   bool
		wantID    string
		async     bool
	}{
		{
			name:      "empty query returns nothing",
			setupMock: func() {},
			wantNil:   true,
		},
		{
			name:  "cache hit",
			email: "dana@example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*dto.ClientResponse)) = dto.ClientResponse{ID: "cached-id"}
						return nil
					})
			},
			wantID: "cached-id",
		},
		{
			name:  "email match on cache miss",
			email: "Dana@Example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(found, nil)

				expectCacheSave()
			},
			wantID: "client-id",
			async:  true,
		},
		{
			name:  "name fallback",
			query: "Dana",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(found, nil)

				expectCacheSave()
			},
			wantID: "client-id",
			async:  true,
		},
		{
			name:  "no match yields nil",
			email: "nobody@example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Client{}, nil)
			},
			wantNil: true,
		},
		{
			name:  "repository error",
			email: "dana@example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Client{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			res, err := svc.Search(ctx, tt.email, tt.query)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, res)
				return
			}

			assert.Equal(t, tt.wantID, res.ID)

			if tt.async {
				<-saved
			}
		})
	}
}

func TestClientService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := clientMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	found := model.Client{
		ID:    "client-id",
		Name:  "Dana Brooks",
		Email: "dana@example.com",
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}

	saved := make(chan struct{}, 8)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantNil   bool
		wantID    string
		async     bool
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*dto.ClientResponse)) = dto.ClientResponse{ID: "client-id"}
						return nil
					})
			},
			wantID: "client-id",
		},
		{
			name: "cache miss, found in db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(found, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, string, any, int) error {
						saved <- struct{}{}
						return nil
					})
			},
			wantID: "client-id",
			async:  true,
		},
		{
			name: "client missing yields nil",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Client{}, nil)
			},
			wantNil: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Client{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			res, err := svc.Get(ctx, "client-id")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, res)
				return
			}

			assert.Equal(t, tt.wantID, res.ID)

			if tt.async {
				<-saved
			}
		})
	}
}
