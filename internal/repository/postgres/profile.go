package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avoronin/devconnect-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

const profileColumns = `p.id, p.user_id, p.status, p.skills, p.company, p.website, p.location,
			  p.bio, p.github_username, p.social, p.experience, p.education,
			  u.name, u.avatar_url, p.created_at, p.updated_at`

func (r *ProfileRepository) GetAll(ctx context.Context) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + `
			  FROM profiles p JOIN users u ON u.id = p.user_id
			  ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	query := `SELECT ` + profileColumns + `
			  FROM profiles p JOIN users u ON u.id = p.user_id
			  WHERE p.user_id = $1`

	row := r.db.QueryRow(ctx, query, userID)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return profile, nil
}

// Upsert creates the profile on first write and fully replaces it on
// subsequent writes, keyed by the owning user.
func (r *ProfileRepository) Upsert(ctx context.Context, profile model.Profile) (model.Profile, error) {
	social, err := json.Marshal(profile.Social)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to marshal social links: %w", err)
	}
	experience, err := json.Marshal(profile.Experience)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to marshal experience: %w", err)
	}
	education, err := json.Marshal(profile.Education)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to marshal education: %w", err)
	}

	query := `INSERT INTO profiles
				(id, user_id, status, skills, company, website, location, bio,
				 github_username, social, experience, education, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
			  ON CONFLICT (user_id) DO UPDATE SET
				status = EXCLUDED.status,
				skills = EXCLUDED.skills,
				company = EXCLUDED.company,
				website = EXCLUDED.website,
				location = EXCLUDED.location,
				bio = EXCLUDED.bio,
				github_username = EXCLUDED.github_username,
				social = EXCLUDED.social,
				experience = EXCLUDED.experience,
				education = EXCLUDED.education,
				updated_at = now()
			  RETURNING id`

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query,
		profile.ID, profile.UserID, profile.Status, profile.Skills,
		profile.Company, profile.Website, profile.Location, profile.Bio,
		profile.GithubUsername, social, experience, education,
	).Scan(&id)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return r.GetByUserID(ctx, profile.UserID)
}

func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var profile model.Profile
	var social, experience, education []byte

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Status, &profile.Skills,
		&profile.Company, &profile.Website, &profile.Location,
		&profile.Bio, &profile.GithubUsername, &social, &experience, &education,
		&profile.OwnerName, &profile.OwnerAvatar, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return model.Profile{}, err
	}

	if err := json.Unmarshal(social, &profile.Social); err != nil {
		return model.Profile{}, fmt.Errorf("failed to unmarshal social links: %w", err)
	}
	if err := json.Unmarshal(experience, &profile.Experience); err != nil {
		return model.Profile{}, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(education, &profile.Education); err != nil {
		return model.Profile{}, fmt.Errorf("failed to unmarshal education: %w", err)
	}

	return profile, nil
}
