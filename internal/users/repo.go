package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("incorrect email or password")
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Repo struct{ DB *pgxpool.Pool }

// Register stores a new user with a bcrypt password hash.
func (r *Repo) Register(ctx context.Context, email, password string) (User, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{ID: uuid.NewString(), Email: email}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO users(id, email, hashed_password) VALUES ($1, $2, $3)
	`, u.ID, u.Email, string(hash))
	return u, err
}

// Authenticate checks email+password; both unknown email and wrong password
// come back as ErrBadCredentials so callers can't probe for accounts.
func (r *Repo) Authenticate(ctx context.Context, email, password string) (User, error) {
	var u User
	var hash string
	err := r.DB.QueryRow(ctx, `SELECT id, email, hashed_password FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrBadCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}
