package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
)

// selectCharacters reads the characters table left-joined with its attribute row.
var selectCharacters = `
	SELECT c.id, c.name, c.character_type, c.level, c.experience, c.health_points,
	       c.guild_id, c.created_date,
	       a.` + strings.Join(attributeColumns, ", a.") + `
	FROM characters c
	LEFT JOIN character_attributes a ON a.character_id = c.id`

// upsertAttributes writes every attribute column, so columns outside the
// character's class are reset to NULL.
var upsertAttributes = `
	INSERT INTO character_attributes (character_id, ` + strings.Join(attributeColumns, ", ") + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (character_id) DO UPDATE SET ` + excludedAssignments(attributeColumns)

func excludedAssignments(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " = EXCLUDED." + c
	}
	return strings.Join(parts, ", ")
}

// CharacterRepository maps characters onto the characters and
// character_attributes tables.
type CharacterRepository struct {
	pool *Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: pool must be a valid, open connection pool.
func NewCharacterRepository(pool *Pool) *CharacterRepository {
	return &CharacterRepository{pool: pool}
}

// Create inserts c and its attribute row in one transaction. Guild
// membership is not written; use GuildRepository.AddMember.
//
// Precondition: c must pass Validate.
// Postcondition: Returns the stored character with ID and CreatedAt set, an
// ALREADY_EXISTS error when the name is taken, or another coded error. On
// error nothing is written.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	row, err := encodeStats(c.Stats)
	if err != nil {
		return nil, err
	}

	var out *character.Character
	err = r.pool.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO characters (name, character_type, level, experience, health_points)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			c.Name, string(c.Class()), c.Level, c.Experience, c.HealthPoints,
		).Scan(&id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertAttributes, append([]any{id}, row.args()...)...); err != nil {
			return err
		}
		var err error
		out, err = getCharacter(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, storeError(err, "creating character")
	}
	return out, nil
}

// List returns every character ordered by id.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) List(ctx context.Context) ([]*character.Character, error) {
	ctx, cancel := r.pool.bound(ctx)
	defer cancel()

	rows, err := r.pool.DB().Query(ctx, selectCharacters+` ORDER BY c.id`)
	if err != nil {
		return nil, storeError(err, "listing characters")
	}
	defer rows.Close()

	chars := make([]*character.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, storeError(err, "scanning character row")
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "listing characters")
	}
	return chars, nil
}

// GetByID retrieves a character by its primary key.
//
// Postcondition: Returns the Character, a NOT_FOUND error, or another coded error.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*character.Character, error) {
	ctx, cancel := r.pool.bound(ctx)
	defer cancel()

	c, err := getCharacter(ctx, r.pool.DB(), id)
	if err != nil {
		return nil, storeError(err, "getting character")
	}
	return c, nil
}

// Update overwrites the stored state of character id with c: shared fields
// and the full attribute row. Guild membership, ID, and CreatedAt are not
// changed.
//
// Precondition: c must pass Validate.
// Postcondition: Returns the stored character, a NOT_FOUND error, an
// ALREADY_EXISTS error when the new name is taken, or another coded error.
func (r *CharacterRepository) Update(ctx context.Context, id int64, c *character.Character) (*character.Character, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	row, err := encodeStats(c.Stats)
	if err != nil {
		return nil, err
	}

	var out *character.Character
	err = r.pool.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCharacter(ctx, tx, id, nil); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE characters
			SET name = $2, character_type = $3, level = $4, experience = $5, health_points = $6
			WHERE id = $1`,
			id, c.Name, string(c.Class()), c.Level, c.Experience, c.HealthPoints,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertAttributes, append([]any{id}, row.args()...)...); err != nil {
			return err
		}
		var err error
		out, err = getCharacter(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, storeError(err, "updating character")
	}
	return out, nil
}

// Delete removes character id and its attribute row in one transaction. If
// the character belonged to a guild, that guild's member count is
// decremented in the same transaction.
//
// Postcondition: Returns nil, a NOT_FOUND error, or another coded error.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	err := r.pool.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var guildID pgtype.Int8
		if err := lockCharacter(ctx, tx, id, &guildID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM character_attributes WHERE character_id = $1`, id); err != nil {
			return err
		}
		if guildID.Valid {
			if err := decrementMembers(ctx, tx, guildID.Int64); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
		return err
	})
	return storeError(err, "deleting character")
}

// lockCharacter takes a row lock on character id, optionally reading its
// guild reference.
func lockCharacter(ctx context.Context, tx pgx.Tx, id int64, guildID *pgtype.Int8) error {
	var scratch pgtype.Int8
	if guildID == nil {
		guildID = &scratch
	}
	err := tx.QueryRow(ctx, `SELECT guild_id FROM characters WHERE id = $1 FOR UPDATE`, id).Scan(guildID)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.NotFoundf("character %d not found", id)
	}
	return err
}

func getCharacter(ctx context.Context, q querier, id int64) (*character.Character, error) {
	c, err := scanCharacter(q.QueryRow(ctx, selectCharacters+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NotFoundf("character %d not found", id)
	}
	return c, err
}

func scanCharacter(row pgx.Row) (*character.Character, error) {
	var (
		c       character.Character
		class   string
		guildID pgtype.Int8
		attrs   attributeRow
	)
	dest := append([]any{
		&c.ID, &c.Name, &class, &c.Level, &c.Experience, &c.HealthPoints,
		&guildID, &c.CreatedAt,
	}, attrs.targets()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	stats, err := decodeStats(class, attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "character %d", c.ID)
	}
	c.Stats = stats
	if guildID.Valid {
		c.GuildID = guildID.Int64
	}
	return &c, nil
}
