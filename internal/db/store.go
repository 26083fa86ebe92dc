package db

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps the connection pool with typed queries. Queries are written
// by hand against the schema in migrations/.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Project struct {
	ID         string
	Name       string
	OwnerID    string
	PlotWidth  float64
	PlotHeight float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Member struct {
	ProjectID   string
	UserID      string
	Role        Role
	DisplayName string
	Email       string
}

type Snapshot struct {
	ID        string
	ProjectID string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
}

type Plant struct {
	ID           string
	Name         string
	Height       int
	Color        string
	PhotoAssetID string
}

// PlantFilter narrows ListPlants. Nil/empty fields are ignored.
type PlantFilter struct {
	MinHeight *int
	MaxHeight *int
	Color     string
}

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password, display_name, created_at`,
		u.ID, u.Email, u.Password, u.DisplayName)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

// --- Projects ---

func (s *Store) CreateProject(ctx context.Context, p Project) (Project, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO projects (id, name, owner_id, plot_width, plot_height)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, owner_id, plot_width, plot_height, created_at, updated_at`,
		p.ID, p.Name, p.OwnerID, p.PlotWidth, p.PlotHeight)
	return scanProject(row)
}

func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, plot_width, plot_height, created_at, updated_at
		 FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (s *Store) ListProjectsForUser(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name, p.owner_id, p.plot_width, p.plot_height, p.created_at, p.updated_at
		 FROM projects p
		 JOIN project_members m ON m.project_id = p.id
		 WHERE m.user_id = $1
		 ORDER BY p.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.OwnerID, &p.PlotWidth, &p.PlotHeight, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// --- Members ---

func (s *Store) AddProjectMember(ctx context.Context, projectID, userID string, role Role) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO project_members (project_id, user_id, role)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		projectID, userID, role)
	return err
}

func (s *Store) GetProjectMember(ctx context.Context, projectID, userID string) (Member, error) {
	var m Member
	err := s.pool.QueryRow(ctx,
		`SELECT m.project_id, m.user_id, m.role, u.display_name, u.email
		 FROM project_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.project_id = $1 AND m.user_id = $2`, projectID, userID).
		Scan(&m.ProjectID, &m.UserID, &m.Role, &m.DisplayName, &m.Email)
	return m, err
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID string) ([]Member, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.project_id, m.user_id, m.role, u.display_name, u.email
		 FROM project_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.project_id = $1
		 ORDER BY u.display_name`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	return err
}

// --- Snapshots ---

func (s *Store) CreateSnapshot(ctx context.Context, snap Snapshot) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO snapshots (id, project_id, version, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, project_id, version, document, created_at`,
		snap.ID, snap.ProjectID, snap.Version, snap.Document)
	var out Snapshot
	err := row.Scan(&out.ID, &out.ProjectID, &out.Version, &out.Document, &out.CreatedAt)
	return out, err
}

func (s *Store) GetLatestSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, project_id, version, document, created_at
		 FROM snapshots
		 WHERE project_id = $1
		 ORDER BY version DESC
		 LIMIT 1`, projectID)
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Version, &snap.Document, &snap.CreatedAt)
	return snap, err
}

// --- Preferences ---

// GetPreferences returns the stored flat preference map for a user, or
// pgx.ErrNoRows if none was ever saved.
func (s *Store) GetPreferences(ctx context.Context, userID string) (json.RawMessage, error) {
	var data json.RawMessage
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM preferences WHERE user_id = $1`, userID).Scan(&data)
	return data, err
}

func (s *Store) UpsertPreferences(ctx context.Context, userID string, data json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO preferences (user_id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		userID, data)
	return err
}

// --- Plants ---

func (s *Store) ListPlants(ctx context.Context, filter PlantFilter) ([]Plant, error) {
	query := `SELECT id, name, height_ft, color, COALESCE(photo_asset_id, '')
	          FROM plants WHERE 1=1`
	var args []any
	if filter.MinHeight != nil {
		args = append(args, *filter.MinHeight)
		query += ` AND height_ft >= $` + strconv.Itoa(len(args))
	}
	if filter.MaxHeight != nil {
		args = append(args, *filter.MaxHeight)
		query += ` AND height_ft <= $` + strconv.Itoa(len(args))
	}
	if filter.Color != "" {
		args = append(args, filter.Color)
		query += ` AND color = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []Plant
	for rows.Next() {
		var p Plant
		if err := rows.Scan(&p.ID, &p.Name, &p.Height, &p.Color, &p.PhotoAssetID); err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

func (s *Store) CountPlants(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM plants`).Scan(&n)
	return n, err
}

func (s *Store) InsertPlant(ctx context.Context, p Plant) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO plants (id, name, height_ft, color, photo_asset_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		p.ID, p.Name, p.Height, p.Color, p.PhotoAssetID)
	return err
}
