package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users(id,full_name,username,role,password_hash) VALUES(?,?,?,?,?)
	`, u.ID, u.FullName, u.Username, u.Role, u.Hash)
	return err
}

func (r *UserRepo) UpdatePassword(username, hash string) error {
	_, err := r.db.Exec(`
		UPDATE users SET password_hash = ? WHERE LOWER(username) = LOWER(?)
	`, hash, username)
	return err
}

func (r *UserRepo) Delete(username string) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE LOWER(username) = LOWER(?)`, username)
	return err
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.db.Select(&out, `
		SELECT id, full_name, username, role, password_hash
		FROM users ORDER BY username
	`)
	return out, err
}

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
		SELECT id, full_name, username, role, password_hash
		FROM users WHERE LOWER(username) = LOWER(?)
	`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
