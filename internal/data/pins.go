package data

import (
	"context"
	"database/sql"
	"errors"

	"DartTableApi/internal/pins"
)

type PinModel struct {
	db *sql.DB
}

func (m *PinModel) insert(pin *pins.Pin, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		INSERT INTO pins (pin, scope)
		VALUES ($1, $2)
		RETURNING id`

	err := tx.QueryRowContext(ctx, stmt, pin.Pin, pin.Scope).Scan(&pin.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "pins_pin_key"`:
			return pins.ErrDuplicatePin
		default:
			return err
		}
	}

	return nil
}

// New mints an unused pin for the scope inside the caller's transaction,
// retrying on the rare collision.
func (m *PinModel) New(scope string, tx *sql.Tx, ctx context.Context) (*pins.Pin, error) {
	pin := &pins.Pin{
		Pin:   pins.GeneratePin(pinLength),
		Scope: scope,
	}

	err := m.insert(pin, tx, ctx)
	if err != nil {
		switch {
		case errors.Is(err, pins.ErrDuplicatePin):
			return m.New(scope, tx, ctx)
		default:
			return nil, err
		}
	}

	return pin, nil
}

func (m *PinModel) Delete(pinID int64, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		DELETE FROM pins
		WHERE id = $1`

	_, err := tx.ExecContext(ctx, stmt, pinID)
	return err
}

var pinLength = 6
