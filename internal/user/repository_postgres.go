package user

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	var createdAt sql.NullString
	err := r.db.QueryRow(`SELECT id, username, password, role, "createdAt" FROM app_user WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &createdAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = createdAt.String
	return u, nil
}

func (r *PostgresRepository) GetByUsername(username string) (User, error) {
	var u User
	var createdAt sql.NullString
	err := r.db.QueryRow(`SELECT id, username, password, role, "createdAt" FROM app_user WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &createdAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = createdAt.String
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRow(`INSERT INTO app_user (username, password, role, "createdAt") VALUES ($1,$2,$3,$4) RETURNING id`,
		u.Username, u.Password, u.Role, now).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = now
	return u, nil
}
