package database

import (
	"context"
	"errors"

	"fake-auth/internal/identifier"
	"fake-auth/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Querier is the set of credential store operations available both on the
// pool and inside a transaction.
type Querier interface {
	GetUserByID(ctx context.Context, id identifier.UserID) (*models.User, error)
	GetUsersByToken(ctx context.Context, token identifier.Token) ([]models.User, error)
	SetUserAuthCode(ctx context.Context, id identifier.UserID, authCode []byte) (bool, error)
	CreateToken(ctx context.Context, token *models.Token) error
	InsertUsers(ctx context.Context, users []models.User) (int64, error)
}

var _ Querier = (*Queries)(nil)

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

var ErrTokenExists = errors.New("token already exists")
var ErrUserNotFound = errors.New("user not found")

func (q *Queries) GetUserByID(ctx context.Context, id identifier.UserID) (*models.User, error) {
	query := `
		SELECT id, username, email, name, profile_image_url, auth_code
		FROM users
		WHERE id = $1
	`
	var user models.User
	var rawID []byte

	err := q.db.QueryRow(ctx, query, id.Bytes()).Scan(
		&rawID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.ProfileImageURL,
		&user.AuthCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := user.ID.Scan(rawID); err != nil {
		return nil, err
	}

	return &user, nil
}

func (q *Queries) GetUsersByToken(ctx context.Context, token identifier.Token) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.name, u.profile_image_url
		FROM users u
		JOIN tokens t ON u.id = t.user_id
		WHERE t.token = $1
	`
	rows, err := q.db.Query(ctx, query, token.Bytes())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var rawID []byte
		if err := rows.Scan(
			&rawID,
			&user.Username,
			&user.Email,
			&user.Name,
			&user.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		if err := user.ID.Scan(rawID); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if users == nil {
		return []models.User{}, nil
	}

	return users, nil
}

func (q *Queries) SetUserAuthCode(ctx context.Context, id identifier.UserID, authCode []byte) (bool, error) {
	query := `UPDATE users SET auth_code = $1 WHERE id = $2`
	res, err := q.db.Exec(ctx, query, authCode, id.Bytes())
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) CreateToken(ctx context.Context, token *models.Token) error {
	query := `
		INSERT INTO tokens (token, type, user_id, scopes)
		VALUES ($1, $2, $3, $4)
	`
	_, err := q.db.Exec(ctx, query, token.Token.Bytes(), int16(token.Type), token.UserID.Bytes(), token.Scopes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrTokenExists
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// InsertUsers bulk-loads seed users with COPY. auth_code is left NULL.
func (q *Queries) InsertUsers(ctx context.Context, users []models.User) (int64, error) {
	columns := []string{"id", "username", "email", "name", "profile_image_url"}
	return q.db.CopyFrom(ctx, pgx.Identifier{"users"}, columns, pgx.CopyFromSlice(len(users), func(i int) ([]any, error) {
		u := users[i]
		return []any{u.ID.Bytes(), u.Username, u.Email, u.Name, u.ProfileImageURL}, nil
	}))
}
