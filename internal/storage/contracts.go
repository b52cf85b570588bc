package storage

import (
	"log/slog"
	"time"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/models"
	"github.com/goccy/go-json"
)

// ArchivedContract is one row of the admin listing.
type ArchivedContract struct {
	ID        int64                 `json:"id"`
	Kind      models.DocumentKind   `json:"kind"`
	Placa     string                `json:"placa"`
	BuyerName string                `json:"buyer_name"`
	Filename  string                `json:"filename"`
	Record    models.ContractRecord `json:"record"`
	CreatedAt time.Time             `json:"created_at"`
}

// SaveContract archives a generated contract record.
func (d *Database) SaveContract(kind models.DocumentKind, filename string, record models.ContractRecord) error {

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return errl.Errorf("failed to marshal contract record: %w", err)
	}

	query := `
		INSERT INTO contracts (kind, placa, buyer_name, filename, record, created_at)
		VALUES (?, ?, ?, ?, jsonb(?), ?)
	`

	_, err = d.db.Exec(query, string(kind), record.Placa, record.Nome, filename, recordJSON, time.Now())
	if err != nil {
		return errl.Errorf("failed to archive contract for %s: %w", record.Placa, err)
	}

	slog.Info("Archived contract", "kind", kind, "placa", record.Placa, "filename", filename)
	return nil
}

// ListContracts returns the archive, newest first.
func (d *Database) ListContracts() ([]ArchivedContract, error) {
	query := `
		SELECT id, kind, placa, buyer_name, filename, json(record), created_at
		FROM contracts
		ORDER BY created_at DESC, id DESC
	`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, errl.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var out []ArchivedContract
	for rows.Next() {
		var c ArchivedContract
		var kind, recordJSON string
		if err := rows.Scan(&c.ID, &kind, &c.Placa, &c.BuyerName, &c.Filename, &recordJSON, &c.CreatedAt); err != nil {
			return nil, errl.Errorf("failed to scan contract row: %w", err)
		}
		c.Kind = models.DocumentKind(kind)
		if err := json.Unmarshal([]byte(recordJSON), &c.Record); err != nil {
			return nil, errl.Errorf("failed to unmarshal contract record: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
