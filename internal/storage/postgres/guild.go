package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
)

const guildColumns = `id, guild_name, level, member_count, created_date`

// GuildRepository provides guild persistence and the membership operations
// that keep guilds.member_count in step with characters.guild_id.
type GuildRepository struct {
	pool *Pool
}

// NewGuildRepository creates a GuildRepository backed by the given pool.
//
// Precondition: pool must be a valid, open connection pool.
func NewGuildRepository(pool *Pool) *GuildRepository {
	return &GuildRepository{pool: pool}
}

// Create inserts g with no members.
//
// Precondition: g must pass Validate.
// Postcondition: Returns the stored guild with ID and CreatedAt set, an
// ALREADY_EXISTS error when the name is taken, or another coded error.
func (r *GuildRepository) Create(ctx context.Context, g *guild.Guild) (*guild.Guild, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := r.pool.bound(ctx)
	defer cancel()

	out, err := scanGuild(r.pool.DB().QueryRow(ctx, `
		INSERT INTO guilds (guild_name, level, member_count)
		VALUES ($1, $2, 0)
		RETURNING `+guildColumns,
		g.Name, g.Level,
	))
	if err != nil {
		return nil, storeError(err, "creating guild")
	}
	return out, nil
}

// List returns every guild ordered by id.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *GuildRepository) List(ctx context.Context) ([]*guild.Guild, error) {
	ctx, cancel := r.pool.bound(ctx)
	defer cancel()

	rows, err := r.pool.DB().Query(ctx, `SELECT `+guildColumns+` FROM guilds ORDER BY id`)
	if err != nil {
		return nil, storeError(err, "listing guilds")
	}
	defer rows.Close()

	guilds := make([]*guild.Guild, 0)
	for rows.Next() {
		g, err := scanGuild(rows)
		if err != nil {
			return nil, storeError(err, "scanning guild row")
		}
		guilds = append(guilds, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "listing guilds")
	}
	return guilds, nil
}

// GetByID retrieves a guild by its primary key.
//
// Postcondition: Returns the Guild, a NOT_FOUND error, or another coded error.
func (r *GuildRepository) GetByID(ctx context.Context, id int64) (*guild.Guild, error) {
	ctx, cancel := r.pool.bound(ctx)
	defer cancel()

	g, err := scanGuild(r.pool.DB().QueryRow(ctx, `SELECT `+guildColumns+` FROM guilds WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NotFoundf("guild %d not found", id)
	}
	if err != nil {
		return nil, storeError(err, "getting guild")
	}
	return g, nil
}

// Update writes the name and level of g to guild id. The member count is
// owned by the membership operations and is never taken from g.
//
// Precondition: g must pass Validate.
// Postcondition: Returns the stored guild, a NOT_FOUND error, or another coded error.
func (r *GuildRepository) Update(ctx context.Context, id int64, g *guild.Guild) (*guild.Guild, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := r.pool.bound(ctx)
	defer cancel()

	out, err := scanGuild(r.pool.DB().QueryRow(ctx, `
		UPDATE guilds SET guild_name = $2, level = $3
		WHERE id = $1
		RETURNING `+guildColumns,
		id, g.Name, g.Level,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NotFoundf("guild %d not found", id)
	}
	if err != nil {
		return nil, storeError(err, "updating guild")
	}
	return out, nil
}

// Delete removes guild id unless it still has members.
//
// Postcondition: Returns nil, a NOT_FOUND error, a FAILED_PRECONDITION error
// when members remain, or another coded error. A refused delete leaves the
// row unchanged.
func (r *GuildRepository) Delete(ctx context.Context, id int64) error {
	err := r.pool.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var members int
		err := tx.QueryRow(ctx, `SELECT member_count FROM guilds WHERE id = $1 FOR UPDATE`, id).Scan(&members)
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.NotFoundf("guild %d not found", id)
		}
		if err != nil {
			return err
		}
		if members > 0 {
			return errors.FailedPreconditionf("cannot delete guild %d: it has %d members", id, members)
		}
		_, err = tx.Exec(ctx, `DELETE FROM guilds WHERE id = $1`, id)
		return err
	})
	return storeError(err, "deleting guild")
}

// AddMember sets the guild of character characterID to guildID and
// increments that guild's member count in one transaction. A character
// moving from another guild decrements the previous guild. maxMembers caps
// the new guild; 0 disables the cap.
//
// Postcondition: Returns nil (a no-op when the character is already a
// member), a NOT_FOUND error for a missing character or guild, a
// FAILED_PRECONDITION error when the guild is full, or another coded error.
func (r *GuildRepository) AddMember(ctx context.Context, characterID, guildID int64, maxMembers int) error {
	err := r.pool.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var current pgtype.Int8
		if err := lockCharacter(ctx, tx, characterID, &current); err != nil {
			return err
		}
		if current.Valid && current.Int64 == guildID {
			return nil
		}

		// Counters are adjusted in ascending guild id order so concurrent
		// moves between the same two guilds cannot deadlock.
		if current.Valid && current.Int64 < guildID {
			if err := decrementMembers(ctx, tx, current.Int64); err != nil {
				return err
			}
		}
		if err := incrementMembers(ctx, tx, guildID, maxMembers); err != nil {
			return err
		}
		if current.Valid && current.Int64 > guildID {
			if err := decrementMembers(ctx, tx, current.Int64); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, `UPDATE characters SET guild_id = $2 WHERE id = $1`, characterID, guildID)
		return err
	})
	return storeError(err, "adding guild member")
}

// RemoveMember clears the guild of character characterID and decrements
// that guild's member count in one transaction.
//
// Postcondition: Returns the guild the character left, 0 with a nil error
// when it belonged to none, a NOT_FOUND error for a missing character, or
// another coded error.
func (r *GuildRepository) RemoveMember(ctx context.Context, characterID int64) (int64, error) {
	var left int64
	err := r.pool.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var current pgtype.Int8
		if err := lockCharacter(ctx, tx, characterID, &current); err != nil {
			return err
		}
		if !current.Valid {
			return nil
		}
		if _, err := tx.Exec(ctx, `UPDATE characters SET guild_id = NULL WHERE id = $1`, characterID); err != nil {
			return err
		}
		if err := decrementMembers(ctx, tx, current.Int64); err != nil {
			return err
		}
		left = current.Int64
		return nil
	})
	if err != nil {
		return 0, storeError(err, "removing guild member")
	}
	return left, nil
}

// incrementMembers atomically adds one member to guild id, refusing when the
// guild is at maxMembers.
func incrementMembers(ctx context.Context, tx pgx.Tx, id int64, maxMembers int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE guilds SET member_count = member_count + 1
		WHERE id = $1 AND ($2 <= 0 OR member_count < $2)`,
		id, maxMembers,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM guilds WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return errors.NotFoundf("guild %d not found", id)
	}
	return errors.FailedPreconditionf("guild %d is full (%d members)", id, maxMembers)
}

// decrementMembers atomically removes one member from guild id, clamped at 0.
func decrementMembers(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE guilds SET member_count = GREATEST(member_count - 1, 0)
		WHERE id = $1`,
		id,
	)
	return err
}

func scanGuild(row pgx.Row) (*guild.Guild, error) {
	var g guild.Guild
	if err := row.Scan(&g.ID, &g.Name, &g.Level, &g.MemberCount, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
