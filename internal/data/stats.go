package data

import (
	"context"
	"database/sql"
	"time"

	"DartTableApi/internal/pins"
	"DartTableApi/internal/stats"
)

type StatsModel struct {
	db *sql.DB
}

func (m *StatsModel) insertLines(matchID int64, lines []stats.MatchLine, tx *sql.Tx,
	ctx context.Context) error {
	stmt := `
		INSERT INTO match_lines (match_id, player_pin, won, darts, scored, high_turn, tons_180)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, line := range lines {
		args := []any{
			matchID,
			line.PlayerPin,
			line.Won,
			line.Darts,
			line.Scored,
			line.HighTurn,
			line.Tons180,
		}

		_, err := tx.ExecContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *StatsModel) MatchLines(matchPin string) ([]stats.MatchLine, error) {
	stmt := `
		SELECT match_lines.player_pin, match_lines.won, match_lines.darts,
			match_lines.scored, match_lines.high_turn, match_lines.tons_180
		FROM match_lines
		INNER JOIN matches ON match_lines.match_id = matches.id
		INNER JOIN pins ON matches.pin_id = pins.id
		WHERE pins.pin = $1 AND pins.scope = $2
		ORDER BY match_lines.player_pin ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, matchPin, pins.PinScopeMatches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]stats.MatchLine, 0)
	for rows.Next() {
		var line stats.MatchLine
		err := rows.Scan(
			&line.PlayerPin,
			&line.Won,
			&line.Darts,
			&line.Scored,
			&line.HighTurn,
			&line.Tons180,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// Career pulls every stored line for the player and reduces it in one place,
// so the profile view and the recap email always agree.
func (m *StatsModel) Career(playerPin string) (stats.Career, error) {
	stmt := `
		SELECT match_lines.won, match_lines.darts, match_lines.scored,
			match_lines.high_turn, match_lines.tons_180
		FROM match_lines
		WHERE match_lines.player_pin = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, playerPin)
	if err != nil {
		return stats.Career{}, err
	}
	defer rows.Close()

	lines := make([]stats.MatchLine, 0)
	for rows.Next() {
		line := stats.MatchLine{PlayerPin: playerPin}
		err := rows.Scan(&line.Won, &line.Darts, &line.Scored, &line.HighTurn, &line.Tons180)
		if err != nil {
			return stats.Career{}, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return stats.Career{}, err
	}

	return stats.Summarize(lines), nil
}
