package data

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"DartTableApi/internal/pins"

	"github.com/lib/pq"
)

func (m *MatchModel) Insert(match *Match) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	pin, err := helperModels.Pins.New(pins.PinScopeMatches, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}
	match.PinID = *pin

	stmt := `
		INSERT INTO matches (pin_id, variant, settings, player_pins)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version, status`

	args := []any{
		match.PinID.ID,
		match.Variant,
		[]byte(match.Settings),
		pq.Array(match.PlayerPins),
	}

	err = tx.QueryRowContext(ctx, stmt, args...).Scan(
		&match.ID,
		&match.CreatedAt,
		&match.Version,
		&match.Status,
	)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	err = checkPlayersExist(match.PlayerPins, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	return nil
}

// checkPlayersExist turns an unknown roster pin into a validation error
// instead of a dangling reference.
func checkPlayersExist(playerPins []string, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		SELECT array_agg(pins.pin)
		FROM pins
		WHERE pins.pin = ANY($1) AND pins.scope = $2`

	var found []string
	err := tx.QueryRowContext(ctx, stmt, pq.Array(playerPins), pins.PinScopePlayers).
		Scan(pq.Array(&found))
	if err != nil {
		return err
	}

	if len(found) == len(playerPins) {
		return nil
	}

	modelErr := ModelValidationErr{Errors: make(map[string]string)}
	for _, pin := range playerPins {
		if !slices.Contains(found, pin) {
			modelErr.AddError("player_pins", `pin "`+pin+`" does not match a player`)
		}
	}
	return modelErr
}
