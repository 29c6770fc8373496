package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource_Load(t *testing.T) {
	source := NewCSVSource(filepath.Join("testdata", "sales.csv"))

	records, err := source.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 5)

	first := records[0]
	assert.Equal(t, "2024-01-05", first.Date.Format("2006-01-02"))
	assert.Equal(t, "ST01", first.StoreID)
	assert.Equal(t, "SKU001", first.SKUID)
	assert.Equal(t, 120.0, first.UnitsSold)
	assert.Equal(t, 4.5, first.Price)
	assert.Equal(t, 540.0, first.Revenue)
}

func TestCSVSource_Load_Erros(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wantErr  error
		contains string
	}{
		{
			name:     "Arquivo inexistente",
			file:     "nao_existe.csv",
			wantErr:  ErrDataLoad,
			contains: "erro ao abrir o arquivo",
		},
		{
			name:     "Coluna obrigatória ausente",
			file:     "missing_column.csv",
			wantErr:  ErrDataLoad,
			contains: "revenue",
		},
		{
			name:     "Data fora do formato esperado",
			file:     "bad_date.csv",
			wantErr:  ErrDataFormat,
			contains: "linha 2",
		},
		{
			name:     "Unidades negativas",
			file:     "negative_units.csv",
			wantErr:  ErrDataFormat,
			contains: "units_sold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewCSVSource(filepath.Join("testdata", tt.file))

			records, err := source.Load(context.Background())

			require.Error(t, err)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCSVSource_Name(t *testing.T) {
	source := NewCSVSource("/dados/vendas.csv")

	assert.Equal(t, "/dados/vendas.csv", source.Name())
}
