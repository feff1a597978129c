package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.email", user.Email))

	if user.ID == "" || user.Email == "" || user.PasswordHash == "" {
		return errors.New("user id, email or password hash empty")
	}

	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return ErrUserExists
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users
				(id, name, email, password, image, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Image, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, email, password, image, created_at, updated_at FROM users WHERE email = $1;`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOne(rows)
}

func (r *Repo) GetByID(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, email, password, image, created_at, updated_at FROM users WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOne(rows)
}

func (r *Repo) scanOne(rows pgx.Rows) (*User, error) {
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrUserNotFound
	}

	var user User
	var name *string
	var image *string
	var createdAt, updatedAt time.Time
	if err := rows.Scan(&user.ID, &name, &user.Email, &user.PasswordHash, &image, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	if name != nil {
		user.Name = *name
	}
	user.Image = image
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt

	return &user, nil
}
