package persistence

import (
	"context"
	"database/sql"

	"github.com/daehee-lim/fxview/model"
	"github.com/daehee-lim/fxview/storage"
)

type Persistence struct {
	dbConn *sql.DB
}

func New(dbConn *sql.DB) storage.QuoteLog {
	return &Persistence{
		dbConn: dbConn,
	}
}

// Record implements storage.QuoteLog.
func (p *Persistence) Record(ctx context.Context, q model.RateQuote) error {
	insertQuery := `INSERT INTO quote_history (source, destination, rate, api_source, fetched_at)
				 VALUES ($1, $2, $3, $4, $5)`

	_, err := p.dbConn.ExecContext(ctx, insertQuery,
		string(q.Pair.Source),
		string(q.Pair.Destination),
		q.Rate,
		q.APISource,
		q.FetchedAt,
	)

	return err
}

// Recent implements storage.QuoteLog.
func (p *Persistence) Recent(ctx context.Context, pair model.Pair, limit int) ([]model.RateQuote, error) {
	selectQuery := `SELECT source, destination, rate, api_source, fetched_at
				 FROM quote_history
				 WHERE source=$1 AND destination=$2
				 ORDER BY fetched_at DESC
				 LIMIT $3`

	rows, err := p.dbConn.QueryContext(ctx, selectQuery,
		string(pair.Source), string(pair.Destination), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []model.RateQuote

	for rows.Next() {
		var q model.RateQuote
		var src, dst string

		if err := rows.Scan(&src, &dst, &q.Rate, &q.APISource, &q.FetchedAt); err != nil {
			return quotes, err
		}

		q.Pair = model.Pair{Source: model.Code(src), Destination: model.Code(dst)}
		quotes = append(quotes, q)
	}

	return quotes, rows.Err()
}
