package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"DartTableApi/internal/pins"
	"DartTableApi/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateEmail = errors.New("duplicate email")

// Player is a profile at the venue. Guests exist only for the evening and
// carry no email or passcode; regular players claim their profile with a
// passcode so their career stats follow them between visits.
type Player struct {
	ID        int64     `json:"-"`
	PinID     pins.Pin  `json:"pin"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Passcode  passcode  `json:"-"`
	IsGuest   bool      `json:"guest"`
	CreatedAt time.Time `json:"-"`
	Version   int32     `json:"-"`
}

type PlayerModel struct {
	db *sql.DB
}

func (m *PlayerModel) Insert(player *Player) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	pin, err := helperModels.Pins.New(pins.PinScopePlayers, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}
	player.PinID = *pin

	stmt := `
		INSERT INTO players (pin_id, name, email, passcode_hash, is_guest)
		VALUES ($1, $2, nullif($3, ''), $4, $5)
		RETURNING id, created_at, version`

	args := []any{
		player.PinID.ID,
		player.Name,
		player.Email,
		player.Passcode.hash,
		player.IsGuest,
	}

	err = tx.QueryRowContext(ctx, stmt, args...).Scan(
		&player.ID,
		&player.CreatedAt,
		&player.Version,
	)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "players_email_key"`:
			return ErrDuplicateEmail
		default:
			return err
		}
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

func (m *PlayerModel) GetByPin(pin string) (*Player, error) {
	stmt := `
		SELECT players.id, pins.id, pins.pin, pins.scope, players.name,
			coalesce(players.email, ''), players.passcode_hash, players.is_guest,
			players.created_at, players.version
		FROM players
		INNER JOIN pins ON players.pin_id = pins.id
		WHERE pins.pin = $1 AND pins.scope = $2`

	var player Player

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, pin, pins.PinScopePlayers).Scan(
		&player.ID,
		&player.PinID.ID,
		&player.PinID.Pin,
		&player.PinID.Scope,
		&player.Name,
		&player.Email,
		&player.Passcode.hash,
		&player.IsGuest,
		&player.CreatedAt,
		&player.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &player, nil
}

type PlayersFilter struct {
	Filters `json:"filters"`
	Name    string `json:"name,omitempty"`
	Guests  *bool  `json:"guests,omitempty"`
}

func (m *PlayerModel) GetAll(filter PlayersFilter) ([]*Player, Metadata, error) {
	stmt := `
		SELECT count(*) OVER(), players.id, pins.id, pins.pin, pins.scope, players.name,
			coalesce(players.email, ''), players.is_guest, players.created_at, players.version
		FROM players
		INNER JOIN pins ON players.pin_id = pins.id
		WHERE (to_tsvector('simple', players.name) @@ plainto_tsquery('simple', $1) OR $1 = '')
		AND (($2 IS FALSE) OR players.is_guest = $3)
		ORDER BY ` + filter.sortColumn() + ` ` + filter.sortDirection() + `, players.id ASC
		LIMIT $4 OFFSET $5`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	args := []any{
		filter.Name,
		filter.Guests != nil,
		filter.Guests != nil && *filter.Guests,
		filter.limit(),
		filter.offset(),
	}

	rows, err := m.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	players := make([]*Player, 0)
	for rows.Next() {
		var player Player
		err := rows.Scan(
			&totalRecords,
			&player.ID,
			&player.PinID.ID,
			&player.PinID.Pin,
			&player.PinID.Scope,
			&player.Name,
			&player.Email,
			&player.IsGuest,
			&player.CreatedAt,
			&player.Version,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		players = append(players, &player)
	}
	if err := rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filter.Page, filter.PageSize)

	return players, metadata, nil
}

func (m *PlayerModel) Update(player *Player) error {
	stmt := `
		UPDATE players
		SET name = $1, email = nullif($2, ''), passcode_hash = $3, is_guest = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`

	args := []any{
		player.Name,
		player.Email,
		player.Passcode.hash,
		player.IsGuest,
		player.ID,
		player.Version,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, args...).Scan(&player.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "players_email_key"`:
			return ErrDuplicateEmail
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *PlayerModel) Delete(pin string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt := `
		DELETE FROM players
		USING pins
		WHERE players.pin_id = pins.id AND pins.pin = $1 AND pins.scope = $2
		RETURNING players.pin_id`

	var pinID int64
	err = tx.QueryRowContext(ctx, stmt, pin, pins.PinScopePlayers).Scan(&pinID)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	err = helperModels.Pins.Delete(pinID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	return tx.Commit()
}

type passcode struct {
	plaintext *string
	hash      []byte
}

func (p *passcode) Set(plaintextPasscode string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPasscode), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintextPasscode
	p.hash = hash

	return nil
}

func (p *passcode) Matches(plaintextPasscode string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPasscode))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidatePasscodePlaintext(v *validator.Validator, passcode string) {
	v.Check(passcode != "", "passcode", "must be provided")
	v.Check(len(passcode) >= 4, "passcode", "must be at least 4 characters long")
	v.Check(len(passcode) <= 72, "passcode", "must be 72 characters or less")
}

func ValidatePlayer(v *validator.Validator, player *Player) {
	v.Check(player.Name != "", "name", "must be provided")
	v.Check(len(player.Name) > 1, "name", "must be greater than 1 character")
	v.Check(len(player.Name) <= 30, "name", "must be 30 characters or less")

	if player.IsGuest {
		v.Check(player.Email == "", "email", "must not be set for a guest")
		v.Check(player.Passcode.hash == nil, "passcode", "must not be set for a guest")
		return
	}

	ValidateEmail(v, player.Email)

	if player.Passcode.plaintext != nil {
		ValidatePasscodePlaintext(v, *player.Passcode.plaintext)
	}

	if player.Passcode.hash == nil {
		panic("missing passcode hash for player")
	}
}
