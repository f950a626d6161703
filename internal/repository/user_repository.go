package repository

import (
	"context"
	"database/sql"
	"strings"

	"boutique/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// userColumns selects every column of the users table, coalescing the
// nullable ones so rows written by older tooling still scan.
const userColumns = `userId, COALESCE(type,''), COALESCE(password,''), COALESCE(email,''),
    COALESCE(firstName,''), COALESCE(lastName,''), COALESCE(address1,''), COALESCE(address2,''),
    COALESCE(zipcode,''), COALESCE(city,''), COALESCE(state,''), COALESCE(country,''),
    COALESCE(phone,''), COALESCE(avatar,''), COALESCE(IP,''), COALESCE(acceptation,1),
    COALESCE(vendor_cert_path,''), COALESCE(cin_path,''), COALESCE(photo_path,'')`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UserID, &u.Type, &u.Password, &u.Email,
		&u.FirstName, &u.LastName, &u.Address1, &u.Address2,
		&u.Zipcode, &u.City, &u.State, &u.Country,
		&u.Phone, &u.Avatar, &u.IP, &u.Acceptation,
		&u.VendorCertPath, &u.CinPath, &u.PhotoPath)
	return u, err
}

// Create inserts a user and returns its id. The password must already be
// hashed by the caller. A clash on the unique email column is reported as
// ErrEmailExists whether it is caught by the pre-check in the handler or by
// the constraint here.
func (r *UserRepo) Create(ctx context.Context, u model.User) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
        INSERT INTO users (
            type, password, email, firstName, lastName,
            address1, address2, zipcode, city, state, country,
            phone, acceptation
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Type, u.Password, u.Email, u.FirstName, u.LastName,
		u.Address1, u.Address2, u.Zipcode, u.City, u.State, u.Country,
		u.Phone, u.Acceptation)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail fetches the credential columns for a login attempt.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT userId, COALESCE(email,''), COALESCE(password,''), COALESCE(type,'') FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.UserID, &u.Email, &u.Password, &u.Type)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByID fetches a full user row.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE userId = ? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// EmailExists reports whether any user row carries the email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT userId FROM users WHERE email = ? LIMIT 1", email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns every user row, unfiltered.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete removes a user by id. Deleting an absent id is a no-op, not an
// error, so repeated deletes stay idempotent.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE userId = ?", id)
	return err
}

// EnsureDefaultAdmin returns the id of some admin user, creating a system
// account when none exists yet. The seeder uses it as the maker for imported
// products.
func (r *UserRepo) EnsureDefaultAdmin(ctx context.Context) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT userId FROM users WHERE type = 'admin' LIMIT 1").Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, `
        INSERT INTO users (type, email, firstName, lastName, password, acceptation)
        VALUES ('admin', 'system@admin.com', 'System', 'Admin', 'default_hash', 1)`)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
