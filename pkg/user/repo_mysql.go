package user

import (
	"database/sql"
)

type UserRepoSQL struct {
	db *sql.DB
}

func NewUserRepoSQL(db *sql.DB) *UserRepoSQL {
	return &UserRepoSQL{db: db}
}

// GetByID resolves an account; a missing id returns (nil, nil).
func (repo *UserRepoSQL) GetByID(id int64) (*User, error) {
	query := "SELECT `id`, `username`, `password` FROM users WHERE id = ?"
	r := repo.db.QueryRow(query, id)

	u := User{}
	err := r.Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (repo *UserRepoSQL) GetByUsername(username string) (*User, error) {
	query := "SELECT `id`, `username`, `password` FROM users WHERE username = ?"
	r := repo.db.QueryRow(query, username)

	u := User{}
	err := r.Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (repo *UserRepoSQL) Add(u *User) (int64, error) {
	query := "INSERT INTO users (`username`, `password`) VALUES (?, ?)"
	r, err := repo.db.Exec(query, u.Username, u.Password)
	if err != nil {
		return 0, err
	}

	return r.LastInsertId()
}
