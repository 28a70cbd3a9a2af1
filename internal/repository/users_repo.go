package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/djmotor90/ghltask/internal/domain"
)

// UsersRepository handles user persistence.
type UsersRepository struct {
	db *sql.DB
}

// NewUsersRepository creates a new users repository.
func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

const userColumns = `
	id, organization_id, ghl_user_id, email, full_name, avatar_url,
	role, is_active, last_login_at, created_at
`

func scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.OrganizationID, &user.GHLUserID, &user.Email,
		&user.FullName, &user.AvatarURL, &user.Role, &user.IsActive,
		&user.LastLoginAt, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create creates a new user.
func (r *UsersRepository) Create(ctx context.Context, user *domain.User) error {
	return r.CreateTx(ctx, r.db, user)
}

// CreateTx creates a new user within a transaction.
func (r *UsersRepository) CreateTx(ctx context.Context, q Querier, user *domain.User) error {
	query := `
		INSERT INTO users (id, organization_id, ghl_user_id, email, full_name,
			avatar_url, role, is_active, last_login_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.ExecContext(ctx, query,
		user.ID, user.OrganizationID, user.GHLUserID, user.Email, user.FullName,
		user.AvatarURL, user.Role, user.IsActive, user.LastLoginAt, user.CreatedAt,
	)
	return err
}

// GetByID retrieves a user by ID.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByGHLUserID retrieves a user by external id, scoped to an organization.
func (r *UsersRepository) GetByGHLUserID(ctx context.Context, orgID uuid.UUID, ghlUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND ghl_user_id = $2`
	return scanUser(r.db.QueryRowContext(ctx, query, orgID, ghlUserID))
}

// ListByOrganization retrieves all users in an organization.
func (r *UsersRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY created_at`
	return r.list(ctx, query, orgID)
}

// ListActiveByOrganization retrieves active users in an organization.
func (r *UsersRepository) ListActiveByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND is_active ORDER BY created_at`
	return r.list(ctx, query, orgID)
}

func (r *UsersRepository) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(
			&user.ID, &user.OrganizationID, &user.GHLUserID, &user.Email,
			&user.FullName, &user.AvatarURL, &user.Role, &user.IsActive,
			&user.LastLoginAt, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// TouchLastLogin records a successful login.
func (r *UsersRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
