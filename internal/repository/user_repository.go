package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mhakbari/orderstack/internal/model"
	"github.com/mhakbari/orderstack/internal/utils"
)

// UserRepo is the credential store. It owns password hashing: plaintext
// passwords enter through Create and UpdatePassword and are bcrypt-hashed
// before any SQL runs; the hash only leaves through lookups that
// explicitly ask for it.
type UserRepo struct {
	DB   *sql.DB
	Cost int // bcrypt cost factor, from configuration
}

func NewUserRepo(db *sql.DB, cost int) *UserRepo { return &UserRepo{DB: db, Cost: cost} }

const userColumns = "id,name,email,phone,role,is_blocked,is_verified,password_changed_at,profile_image,addr_street,addr_city,addr_state,addr_postal_code,addr_country,created_at,updated_at"

// Create inserts a new user and returns the persisted record (without
// the password hash). The email is lowercased before insert so the
// unique index is case-insensitive in practice.
func (r *UserRepo) Create(ctx context.Context, nu model.NewUser) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(nu.Email))
	hash, err := utils.HashPassword(nu.Password, r.Cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users
		   (name, email, password_hash, phone, role, addr_street, addr_city, addr_state, addr_postal_code, addr_country)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		nu.Name, email, hash, nullable(nu.Phone), string(nu.Role),
		nullable(nu.Address.Street), nullable(nu.Address.City), nullable(nu.Address.State),
		nullable(nu.Address.PostalCode), nullable(nu.Address.Country))
	if err != nil {
		// MySQL 1062: duplicate entry for the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id), false)
}

// GetByEmail fetches a user by normalized email. The password hash is
// only loaded when withPassword is true; callers that just display a
// user can never leak the hash by accident.
func (r *UserRepo) GetByEmail(ctx context.Context, email string, withPassword bool) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, withPassword, "email=?", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64, withPassword bool) (model.User, error) {
	return r.getOne(ctx, withPassword, "id=?", id)
}

// List returns all users, newest first, never including password hashes.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update persists mutable profile fields (name, phone, address). Email
// and password have dedicated paths.
func (r *UserRepo) Update(ctx context.Context, id uint64, name, phone string, addr model.Address) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name=?, phone=?, addr_street=?, addr_city=?, addr_state=?, addr_postal_code=?, addr_country=? WHERE id=?`,
		name, nullable(phone),
		nullable(addr.Street), nullable(addr.City), nullable(addr.State),
		nullable(addr.PostalCode), nullable(addr.Country), id)
	if err != nil {
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update;
		// re-read to tell them apart.
		if _, err := r.GetByID(ctx, id, false); err != nil {
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id, false)
}

// Delete removes a user row.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword re-hashes and persists a new password and stamps
// password_changed_at. The stamp is what invalidates every refresh
// token issued before this moment.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, newPlaintext string) error {
	hash, err := utils.HashPassword(newPlaintext, r.Cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, password_changed_at=NOW() WHERE id=?",
		hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBlocked persists the blocked flag.
func (r *UserRepo) SetBlocked(ctx context.Context, id uint64, blocked bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_blocked=? WHERE id=?", blocked, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id, false); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, withPassword bool, where string, arg interface{}) (model.User, error) {
	cols := userColumns
	if withPassword {
		cols += ",password_hash"
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+cols+" FROM users WHERE "+where+" LIMIT 1", arg)
	u, err := scanUser(row.Scan, withPassword)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func scanUser(scan func(dest ...interface{}) error, withPassword bool) (model.User, error) {
	var (
		u          model.User
		role       string
		phone      sql.NullString
		changedAt  sql.NullTime
		img        sql.NullString
		street     sql.NullString
		city       sql.NullString
		state      sql.NullString
		postalCode sql.NullString
		country    sql.NullString
	)
	dest := []interface{}{
		&u.ID, &u.Name, &u.Email, &phone, &role, &u.IsBlocked, &u.IsVerified,
		&changedAt, &img, &street, &city, &state, &postalCode, &country,
		&u.CreatedAt, &u.UpdatedAt,
	}
	if withPassword {
		dest = append(dest, &u.PasswordHash)
	}
	if err := scan(dest...); err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	u.Phone = phone.String
	u.ProfileImage = img.String
	if changedAt.Valid {
		t := changedAt.Time
		u.PasswordChangedAt = &t
	}
	u.Address = model.Address{
		Street:     street.String,
		City:       city.String,
		State:      state.String,
		PostalCode: postalCode.String,
		Country:    country.String,
	}
	return u, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
