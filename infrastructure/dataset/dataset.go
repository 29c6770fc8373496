package dataset

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/cpg-decision-api/internal/domain"
)

// Source é uma fonte tabular de registros de vendas.
// Implementações atuais: arquivo CSV e tabela Postgres.
type Source interface {
	Load(ctx context.Context) ([]domain.SalesRecord, error)
	Name() string
}

// Filter define os predicados opcionais aplicados sobre o dataset.
// Campos zerados significam ausência de restrição.
type Filter struct {
	SKUID     string
	StoreID   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Summary resume o conteúdo do dataset carregado.
type Summary struct {
	NumRecords int      `json:"num_records"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	SKUs       []string `json:"skus"`
	Stores     []string `json:"stores"`
}

// Dataset é a tabela imutável de vendas carregada uma única vez por processo.
// Nenhum componente escreve de volta na fonte; toda análise opera sobre
// cópias filtradas, então chamadas concorrentes são seguras sem locks.
type Dataset struct {
	records []domain.SalesRecord
	source  string
}

// New carrega o dataset a partir da fonte informada e o materializa em memória.
func New(ctx context.Context, source Source) (*Dataset, error) {
	records, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, NewDataError(ErrDataLoad, source.Name(), "a fonte não contém registros de vendas")
	}

	return &Dataset{
		records: records,
		source:  source.Name(),
	}, nil
}

// NewFromRecords materializa um dataset diretamente de registros em memória.
// Útil para embutir o núcleo analítico sem uma fonte externa e para testes.
func NewFromRecords(records []domain.SalesRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, NewDataError(ErrDataLoad, "memory", "a fonte não contém registros de vendas")
	}

	copied := make([]domain.SalesRecord, len(records))
	copy(copied, records)

	return &Dataset{
		records: copied,
		source:  "memory",
	}, nil
}

// Len retorna a quantidade total de registros carregados.
func (d *Dataset) Len() int {
	return len(d.records)
}

// SourceName retorna o identificador da fonte que originou o dataset.
func (d *Dataset) SourceName() string {
	return d.source
}

// Filter devolve uma cópia nova dos registros que satisfazem os predicados,
// preservando a ordem original de carga.
func (d *Dataset) Filter(f Filter) []domain.SalesRecord {
	filtered := make([]domain.SalesRecord, 0, len(d.records))

	for _, record := range d.records {
		if f.SKUID != "" && record.SKUID != f.SKUID {
			continue
		}

		if f.StoreID != "" && record.StoreID != f.StoreID {
			continue
		}

		if f.StartDate != nil && record.Date.Before(*f.StartDate) {
			continue
		}

		if f.EndDate != nil && record.Date.After(*f.EndDate) {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}

// Summary resume o dataset para o endpoint de inspeção.
func (d *Dataset) Summary() Summary {
	skuSet := make(map[string]struct{})
	storeSet := make(map[string]struct{})

	minDate := d.records[0].Date
	maxDate := d.records[0].Date

	for _, record := range d.records {
		skuSet[record.SKUID] = struct{}{}
		storeSet[record.StoreID] = struct{}{}

		if record.Date.Before(minDate) {
			minDate = record.Date
		}
		if record.Date.After(maxDate) {
			maxDate = record.Date
		}
	}

	return Summary{
		NumRecords: len(d.records),
		StartDate:  minDate.Format(time.DateOnly),
		EndDate:    maxDate.Format(time.DateOnly),
		SKUs:       sortedKeys(skuSet),
		Stores:     sortedKeys(storeSet),
	}
}

// SKUStorePairs lista os pares (sku, loja) distintos presentes no dataset,
// usados pela varredura agendada de anomalias.
func (d *Dataset) SKUStorePairs() [][2]string {
	seen := make(map[[2]string]struct{})
	pairs := make([][2]string, 0)

	for _, record := range d.records {
		pair := [2]string{record.SKUID, record.StoreID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	return pairs
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
