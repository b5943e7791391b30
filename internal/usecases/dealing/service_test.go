package dealing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	repomocks "github.com/vfg2006/sales-pipeline-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dealing"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dealing/mocks"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
)

func dealCode(t *testing.T, err error) string {
	t.Helper()
	var dealErr *dealing.DealError
	require.True(t, errors.As(err, &dealErr))
	return dealErr.Code
}

func TestService_ListDeals(t *testing.T) {
	tests := []struct {
		name     string
		query    dealing.Query
		setup    func(repo *repomocks.MockDealRepository)
		validate func(t *testing.T, deals []domain.Deal, err error)
	}{
		{
			name: "Repassa todos os filtros ao repositório",
			query: dealing.Query{
				Status:         domain.DealStatusWon,
				Category:       "software",
				AssigneeID:     "u1",
				Search:         "acme",
				IncludeDeleted: true,
			},
			setup: func(repo *repomocks.MockDealRepository) {
				repo.EXPECT().ListDeals(gomock.Any(), repository.DealFilter{
					AssigneeID:     "u1",
					Status:         domain.DealStatusWon,
					Category:       "software",
					Search:         "acme",
					IncludeDeleted: true,
				}).Return([]domain.Deal{{ID: "d1"}}, nil)
			},
			validate: func(t *testing.T, deals []domain.Deal, err error) {
				require.NoError(t, err)
				require.Len(t, deals, 1)
				assert.Equal(t, "d1", deals[0].ID)
			},
		},
		{
			name:  "Status fora da enumeração",
			query: dealing.Query{Status: "archived"},
			setup: func(repo *repomocks.MockDealRepository) {},
			validate: func(t *testing.T, deals []domain.Deal, err error) {
				assert.ErrorIs(t, err, dealing.ErrInvalidStatus)
				assert.Equal(t, apiErrors.ErrInvalidFormat, dealCode(t, err))
			},
		},
		{
			name: "Erro do banco",
			setup: func(repo *repomocks.MockDealRepository) {
				repo.EXPECT().ListDeals(gomock.Any(), repository.DealFilter{}).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, deals []domain.Deal, err error) {
				assert.ErrorIs(t, err, dealing.ErrFetchDeals)
				assert.Equal(t, apiErrors.ErrDatabaseOperation, dealCode(t, err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockDealRepository(ctrl)
			tt.setup(repo)

			deals, err := dealing.NewService(repo, mocks.NewMockExporter(ctrl)).ListDeals(context.Background(), tt.query)
			tt.validate(t, deals, err)
		})
	}
}

func TestService_ExportDeals(t *testing.T) {
	deals := []domain.Deal{{ID: "d1", Status: domain.DealStatusLead}}

	t.Run("Exporta os negócios filtrados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockDealRepository(ctrl)
		exporter := mocks.NewMockExporter(ctrl)

		repo.EXPECT().ListDeals(gomock.Any(), repository.DealFilter{Status: domain.DealStatusLead}).Return(deals, nil)
		exporter.EXPECT().DealsToXLSX(deals).Return([]byte("xlsx"), nil)

		content, err := dealing.NewService(repo, exporter).ExportDeals(context.Background(), dealing.Query{Status: domain.DealStatusLead})
		require.NoError(t, err)
		assert.Equal(t, []byte("xlsx"), content)
	})

	t.Run("Falha do exportador", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockDealRepository(ctrl)
		exporter := mocks.NewMockExporter(ctrl)

		repo.EXPECT().ListDeals(gomock.Any(), gomock.Any()).Return(deals, nil)
		exporter.EXPECT().DealsToXLSX(deals).Return(nil, errors.New("disco cheio"))

		_, err := dealing.NewService(repo, exporter).ExportDeals(context.Background(), dealing.Query{})
		assert.ErrorIs(t, err, dealing.ErrExport)
		assert.Equal(t, apiErrors.ErrExportFailed, dealCode(t, err))
	})

	t.Run("Status inválido não consulta o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := dealing.NewService(repomocks.NewMockDealRepository(ctrl), mocks.NewMockExporter(ctrl)).
			ExportDeals(context.Background(), dealing.Query{Status: "archived"})
		assert.ErrorIs(t, err, dealing.ErrInvalidStatus)
	})
}
