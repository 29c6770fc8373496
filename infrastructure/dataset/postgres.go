package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/cpg-decision-api/infrastructure/database/postgres"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
)

// PostgresSource carrega o dataset de vendas a partir de uma tabela Postgres
// com as mesmas colunas obrigatórias da fonte CSV.
type PostgresSource struct {
	conn  postgres.Conn
	table string
}

// NewPostgresSource cria uma fonte Postgres para a tabela informada.
func NewPostgresSource(conn postgres.Conn, table string) *PostgresSource {
	return &PostgresSource{
		conn:  conn,
		table: table,
	}
}

// Name retorna o identificador da fonte.
func (s *PostgresSource) Name() string {
	return fmt.Sprintf("postgres:%s", s.table)
}

// Load materializa a tabela inteira em memória, ordenada por data.
func (s *PostgresSource) Load(ctx context.Context) ([]domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select("date", "store_id", "sku_id", "units_sold", "price", "revenue").
		From(s.table).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, NewDataError(ErrDataLoad, s.Name(), fmt.Sprintf("erro ao construir a query: %v", err))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, NewDataError(ErrDataLoad, s.Name(), fmt.Sprintf("erro ao executar a query: %v", err))
	}
	defer rows.Close()

	var records []domain.SalesRecord

	for rows.Next() {
		var record domain.SalesRecord
		var date time.Time

		err := rows.Scan(&date, &record.StoreID, &record.SKUID, &record.UnitsSold, &record.Price, &record.Revenue)
		if err != nil {
			return nil, NewDataError(ErrDataFormat, s.Name(), fmt.Sprintf("erro ao escanear registro: %v", err))
		}

		if record.UnitsSold < 0 || record.Price < 0 || record.Revenue < 0 {
			return nil, NewDataError(ErrDataFormat, s.Name(), "valores negativos em units_sold, price ou revenue")
		}

		record.Date = date
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, NewDataError(ErrDataLoad, s.Name(), fmt.Sprintf("erro ao iterar registros: %v", err))
	}

	return records, nil
}
