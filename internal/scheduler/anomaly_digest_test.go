package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
)

func digestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.SalesRecord, 0)

	// Par estável: nenhuma anomalia esperada
	stable := []float64{10, 12, 11, 10, 12, 11}
	for i, units := range stable {
		records = append(records, domain.SalesRecord{
			Date:      start.AddDate(0, 0, i),
			SKUID:     "SKU001",
			StoreID:   "ST01",
			UnitsSold: units,
		})
	}

	// Par com pico: uma anomalia esperada
	spiky := []float64{10, 12, 11, 11, 50}
	for i, units := range spiky {
		records = append(records, domain.SalesRecord{
			Date:      start.AddDate(0, 0, i),
			SKUID:     "SKU002",
			StoreID:   "ST01",
			UnitsSold: units,
		})
	}

	data, err := dataset.NewFromRecords(records)
	require.NoError(t, err)

	return data
}

func TestAnomalyDigestService_RunDigest(t *testing.T) {
	data := digestDataset(t)

	service := &AnomalyDigestService{
		detector: detecting.NewService(data),
		data:     data,
		config: AnomalyDigestConfig{
			Window:     3,
			ZThreshold: 2,
		},
	}

	err := service.RunDigest()

	require.NoError(t, err)
	assert.False(t, service.sweepRunning)
	assert.False(t, service.lastSweepStartedAt.IsZero())
	assert.False(t, service.lastSweepFinishedAt.IsZero())
}

func TestAnomalyDigestService_Start_Desabilitado(t *testing.T) {
	service := &AnomalyDigestService{
		config: AnomalyDigestConfig{Enabled: false},
	}

	err := service.Start(context.Background())

	assert.NoError(t, err)
}
