package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/taskhive/internal/domain"
)

// ProjectRepository реализует repository.ProjectRepository для PostgreSQL
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `project_id, title, description, team_id, created_by, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	err := row.Scan(
		&project.ProjectID,
		&project.Title,
		&project.Description,
		&project.TeamID,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create создает новый проект
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (project_id, title, description, team_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		project.ProjectID, project.Title, project.Description, project.TeamID, project.CreatedBy,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation { // team vanished after the membership check
			return domain.ErrTeamNotFound
		}
		return err
	}

	return nil
}

// GetByID получает проект по ID
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1`

	project, err := scanProject(r.db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	return project, nil
}

// ListByTeams возвращает проекты перечисленных команд
func (r *ProjectRepository) ListByTeams(ctx context.Context, teamIDs []string) ([]*domain.Project, error) {
	projects := []*domain.Project{}
	if len(teamIDs) == 0 {
		return projects, nil
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE team_id = ANY($1)
		ORDER BY created_at DESC, project_id
	`

	rows, err := r.db.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Update сохраняет изменяемые поля проекта
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `
		UPDATE projects
		SET title = $1, description = $2, updated_at = NOW()
		WHERE project_id = $3
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, project.Title, project.Description, project.ProjectID).
		Scan(&project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}

	return nil
}

// Delete удаляет проект
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}
