package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/taskhive/internal/domain"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create создает новую команду и записывает создателя первым участником
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	query := `
		INSERT INTO teams (team_id, team_name, created_by)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := tx.QueryRow(ctx, query, team.TeamID, team.TeamName, team.CreatedBy).Scan(&team.CreatedAt); err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return err
	}

	memberQuery := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, memberID := range team.MemberIDs {
		if _, err := tx.Exec(ctx, memberQuery, team.TeamID, memberID); err != nil {
			if pgErrorCode(err) == codeForeignKeyViolation {
				return domain.ErrUserNotFound
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID получает команду со списком ID участников
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `
		SELECT team_id, team_name, created_by, created_at
		FROM teams
		WHERE team_id = $1
	`

	var team domain.Team
	err := r.db.QueryRow(ctx, query, teamID).Scan(
		&team.TeamID,
		&team.TeamName,
		&team.CreatedBy,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	members, err := r.memberIDs(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.MemberIDs = members

	return &team, nil
}

func (r *TeamRepository) memberIDs(ctx context.Context, teamID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM team_members
		WHERE team_id = $1
		ORDER BY joined_at, user_id
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}

	return members, rows.Err()
}

// ListByUser возвращает команды, где пользователь создатель или участник,
// вместе с ID участников одним запросом
func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	query := `
		SELECT t.team_id, t.team_name, t.created_by, t.created_at,
		       COALESCE(
		           array_agg(tm.user_id ORDER BY tm.joined_at, tm.user_id)
		               FILTER (WHERE tm.user_id IS NOT NULL),
		           '{}'
		       ) AS member_ids
		FROM teams t
		LEFT JOIN team_members tm ON tm.team_id = t.team_id
		WHERE t.created_by = $1
		   OR EXISTS (
		       SELECT 1 FROM team_members own
		       WHERE own.team_id = t.team_id AND own.user_id = $1
		   )
		GROUP BY t.team_id
		ORDER BY t.created_at DESC, t.team_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []*domain.Team{}
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.TeamID, &team.TeamName, &team.CreatedBy, &team.CreatedAt, &team.MemberIDs); err != nil {
			return nil, err
		}
		teams = append(teams, &team)
	}

	return teams, rows.Err()
}

// AddMember добавляет участника в команду
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, teamID, userID)
	if err != nil {
		switch pgErrorCode(err) {
		case codeUniqueViolation:
			return domain.ErrAlreadyMember
		case codeForeignKeyViolation:
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// RemoveMember исключает участника из команды
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	_, err := r.db.Exec(ctx, query, teamID, userID)
	return err
}
