// Package imgpostgres keeps the list of uploaded images in postgres so it survives restarts
package imgpostgres

import (
	"context"
	"log"

	"github.com/wb-go/wbf/dbpg"
)

type Store struct {
	DB *dbpg.DB
}

func (p Store) Append(ctx context.Context, name string) error {
	query := `INSERT INTO uploads (filename, created_at)
	VALUES ($1, now())`
	_, err := p.DB.Master.ExecContext(ctx, query, name)
	return err
}

func (p Store) Snapshot(ctx context.Context) ([]string, error) {
	query := `SELECT filename 
	FROM uploads 
	ORDER BY id ASC`

	rows, err := p.DB.Master.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Error while closing *sql.Rows after scanning: %v", err)
		}
	}()

	names := make([]string, 0)
	for rows.Next() {
		name := ""
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return names, nil
}
