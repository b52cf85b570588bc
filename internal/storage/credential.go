package storage

import (
	"database/sql"

	"github.com/contratoseguro/contratos/internal/errl"
)

// The device credential table holds at most one row. The handle is
// written on first registration and never updated afterwards, matching
// the gate's write-once lifecycle.

// GetCredentialHandle returns the stored credential handle, or "" when
// no registration has happened.
func (d *Database) GetCredentialHandle() (string, error) {
	var handle string
	err := d.db.QueryRow(`SELECT credential_id FROM device_credential WHERE id = 1`).Scan(&handle)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", errl.Errorf("failed to read credential handle: %w", err)
	}
	return handle, nil
}

// SetCredentialHandle persists the handle once. A second call is a
// no-op keeping the original value.
func (d *Database) SetCredentialHandle(handle string) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO device_credential (id, credential_id) VALUES (1, ?)`,
		handle,
	)
	if err != nil {
		return errl.Errorf("failed to store credential handle: %w", err)
	}
	return nil
}
