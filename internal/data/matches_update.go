package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"DartTableApi/internal/pins"
	"DartTableApi/internal/stats"
)

var ErrInvalidStatusChange = errors.New("invalid match status change")

// allowedStatusChange encodes the match lifecycle. Finished and canceled
// matches never come back.
func allowedStatusChange(from, to MatchStatus) bool {
	switch from {
	case NOTSTARTED:
		return to == INPROGRESS || to == CANCELED
	case INPROGRESS:
		return to == FINISHED || to == CANCELED
	default:
		return false
	}
}

func (m *MatchModel) UpdateStatus(match *Match, to MatchStatus) error {
	if !allowedStatusChange(match.Status, to) {
		return ErrInvalidStatusChange
	}

	stmt := `
		UPDATE matches
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version, status`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, to, match.ID, match.Version).Scan(
		&match.Version,
		&match.Status,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

// RecordResult moves the match to finished and stores the winner in one
// transaction with the per-player lines.
func (m *MatchModel) RecordResult(matchPin string, winnerPin string, lines []stats.MatchLine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt := `
		UPDATE matches
		SET status = $1, winner_pin = nullif($2, ''), version = version + 1
		FROM pins
		WHERE matches.pin_id = pins.id AND pins.pin = $3 AND pins.scope = $4
			AND matches.status = $5
		RETURNING matches.id`

	var matchID int64
	err = tx.QueryRowContext(ctx, stmt, FINISHED, winnerPin, matchPin,
		pins.PinScopeMatches, INPROGRESS).Scan(&matchID)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrInvalidStatusChange
		default:
			return err
		}
	}

	err = helperModels.Stats.insertLines(matchID, lines, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	return tx.Commit()
}
