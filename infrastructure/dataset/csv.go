package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
)

// Colunas obrigatórias da fonte tabular
var requiredColumns = []string{"date", "store_id", "sku_id", "units_sold", "price", "revenue"}

// CSVSource carrega o dataset de vendas a partir de um arquivo CSV com cabeçalho.
type CSVSource struct {
	path string
}

// NewCSVSource cria uma fonte CSV para o caminho informado.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name retorna o identificador da fonte.
func (s *CSVSource) Name() string {
	return s.path
}

// Load lê e valida o arquivo inteiro. Falhas de parsing de data ou de número
// interrompem a carga com ErrDataFormat em vez de descartar a linha.
func (s *CSVSource) Load(_ context.Context) ([]domain.SalesRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, NewDataError(ErrDataLoad, s.path, errors.Wrap(err, "erro ao abrir o arquivo").Error())
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, NewDataError(ErrDataLoad, s.path, errors.Wrap(err, "erro ao ler o cabeçalho").Error())
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, NewDataError(ErrDataLoad, s.path, err.Error())
	}

	var records []domain.SalesRecord

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewDataError(ErrDataFormat, s.path, fmt.Sprintf("linha %d: %v", line, err))
		}

		record, err := parseRow(row, columns)
		if err != nil {
			return nil, NewDataError(ErrDataFormat, s.path, fmt.Sprintf("linha %d: %v", line, err))
		}

		records = append(records, record)
	}

	return records, nil
}

// mapColumns resolve a posição de cada coluna obrigatória no cabeçalho
func mapColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}

	for _, column := range requiredColumns {
		if _, ok := positions[column]; !ok {
			return nil, fmt.Errorf("coluna obrigatória ausente: %s", column)
		}
	}

	return positions, nil
}

// parseRow converte uma linha do CSV em SalesRecord
func parseRow(row []string, columns map[string]int) (domain.SalesRecord, error) {
	var record domain.SalesRecord

	date, err := time.Parse(time.DateOnly, row[columns["date"]])
	if err != nil {
		return record, fmt.Errorf("data inválida %q: %w", row[columns["date"]], err)
	}

	unitsSold, err := parseNonNegative("units_sold", row[columns["units_sold"]])
	if err != nil {
		return record, err
	}

	price, err := parseNonNegative("price", row[columns["price"]])
	if err != nil {
		return record, err
	}

	revenue, err := parseNonNegative("revenue", row[columns["revenue"]])
	if err != nil {
		return record, err
	}

	record = domain.SalesRecord{
		Date:      date,
		StoreID:   row[columns["store_id"]],
		SKUID:     row[columns["sku_id"]],
		UnitsSold: unitsSold,
		Price:     price,
		Revenue:   revenue,
	}

	return record, nil
}

func parseNonNegative(column, raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("valor inválido para %s: %q", column, raw)
	}

	if value < 0 {
		return 0, fmt.Errorf("valor negativo para %s: %q", column, raw)
	}

	return value, nil
}
