package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"DartTableApi/internal/pins"

	"github.com/lib/pq"
)

func (m *MatchModel) GetByPin(pin string) (*Match, error) {
	stmt := `
		SELECT matches.id, pins.id, pins.pin, pins.scope, matches.created_at, matches.version,
			matches.status, matches.variant, matches.settings, matches.player_pins,
			coalesce(matches.winner_pin, '')
		FROM matches
		INNER JOIN pins ON matches.pin_id = pins.id
		WHERE pins.pin = $1 AND pins.scope = $2`

	var match Match

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, pin, pins.PinScopeMatches).Scan(
		&match.ID,
		&match.PinID.ID,
		&match.PinID.Pin,
		&match.PinID.Scope,
		&match.CreatedAt,
		&match.Version,
		&match.Status,
		&match.Variant,
		&match.Settings,
		pq.Array(&match.PlayerPins),
		&match.WinnerPin,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &match, nil
}

type MatchesFilter struct {
	Filters    `json:"filters"`
	PlayerPins []string      `json:"player_pins,omitempty"`
	Variant    string        `json:"variant,omitempty"`
	Status     []MatchStatus `json:"status,omitempty"`
}

func (m *MatchModel) GetAll(filter MatchesFilter) ([]*Match, Metadata, error) {
	stmt := `
		SELECT count(*) OVER(), matches.id, pins.id, pins.pin, pins.scope, matches.created_at,
			matches.version, matches.status, matches.variant, matches.settings,
			matches.player_pins, coalesce(matches.winner_pin, '')
		FROM matches
		INNER JOIN pins ON matches.pin_id = pins.id
		WHERE (($1 IS FALSE) OR matches.player_pins @> $2::text[])
		AND (($3 IS FALSE) OR matches.variant = $4)
		AND (($5 IS FALSE) OR matches.status = ANY($6::integer[]))
		ORDER BY ` + filter.sortColumn() + ` ` + filter.sortDirection() + `, matches.id ASC
		LIMIT $7 OFFSET $8`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	args := []any{
		filter.PlayerPins != nil,
		pq.Array(filter.PlayerPins),
		filter.Variant != "",
		filter.Variant,
		filter.Status != nil,
		pq.Array(filter.Status),
		filter.limit(),
		filter.offset(),
	}

	rows, err := m.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	matches := make([]*Match, 0)
	for rows.Next() {
		var match Match
		err := rows.Scan(
			&totalRecords,
			&match.ID,
			&match.PinID.ID,
			&match.PinID.Pin,
			&match.PinID.Scope,
			&match.CreatedAt,
			&match.Version,
			&match.Status,
			&match.Variant,
			&match.Settings,
			pq.Array(&match.PlayerPins),
			&match.WinnerPin,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		matches = append(matches, &match)
	}
	if err := rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filter.Page, filter.PageSize)

	return matches, metadata, nil
}
