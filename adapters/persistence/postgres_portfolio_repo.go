package persistence

import (
	"context"
	"errors"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger

	// provision runs until it succeeds once, so a database that was down at
	// boot still gets its tables.
	provision   func(ctx context.Context) error
	schemaMu    sync.Mutex
	schemaReady bool
}

// PostgresPortfolioRepo is the durable backend.
type PostgresPortfolioRepo interface {
	portfolio.Repository
	Ping(ctx context.Context) error
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) PostgresPortfolioRepo {
	return &postgresPortfolioRepo{
		db:        db,
		logger:    logger,
		provision: func(ctx context.Context) error { return ProvisionSchema(ctx, db) },
	}
}

func (r *postgresPortfolioRepo) ensureSchema(ctx context.Context) error {
	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()
	if r.schemaReady {
		return nil
	}
	if err := r.provision(ctx); err != nil {
		return apperror.NewInternal("failed to provision schema", err)
	}
	r.schemaReady = true
	r.logger.Info("Database schema provisioned.")
	return nil
}

var psqlPortfolio = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const upsertProfileQuery = `
	INSERT INTO users (id, email, name, title, bio, phone, location, website, github, linkedin, instagram, resume_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (email) DO UPDATE SET
		name = EXCLUDED.name,
		title = EXCLUDED.title,
		bio = EXCLUDED.bio,
		updated_at = NOW()
	RETURNING id
`

func (r *postgresPortfolioRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Save writes the whole record graph in one transaction. When the email
// already belongs to another owner only that owner's name/title/bio are
// overwritten and a conflict error is returned.
func (r *postgresPortfolioRepo) Save(ctx context.Context, p *portfolio.Portfolio) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin portfolio transaction", err)
	}
	defer tx.Rollback(ctx)

	u := p.Profile
	var storedID uuid.UUID
	err = tx.QueryRow(ctx, upsertProfileQuery,
		u.ID, u.Email, u.Name, u.Title, u.Bio,
		u.Phone, u.Location, u.Website, u.GitHub, u.LinkedIn, u.Instagram, u.ResumeURL,
	).Scan(&storedID)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}

	if storedID != u.ID {
		if err := tx.Commit(ctx); err != nil {
			return apperror.NewInternal("failed to commit profile overwrite", err)
		}
		r.logger.Warn("Email already owned by another portfolio, profile overwritten",
			zap.String("existing_owner_id", storedID.String()),
			zap.String("owner_id", u.ID.String()),
		)
		return apperror.NewConflict("portfolio", "email", u.Email)
	}

	batch := &pgx.Batch{}
	for _, pr := range p.Projects {
		batch.Queue(`
			INSERT INTO projects (user_id, title, company, duration, description, technologies, achievements, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			u.ID, pr.Title, pr.Company, pr.Duration, pr.Description, pr.Technologies, pr.Achievements, pr.Position,
		)
	}
	for _, ex := range p.Experience {
		batch.Queue(`
			INSERT INTO experience (user_id, title, company, location, duration, responsibilities, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.ID, ex.Title, ex.Company, ex.Location, ex.Duration, ex.Responsibilities, ex.Position,
		)
	}
	for _, ed := range p.Education {
		batch.Queue(`
			INSERT INTO education (user_id, degree, institution, duration, grade, order_index)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, ed.Degree, ed.Institution, ed.Duration, ed.Grade, ed.Position,
		)
	}
	for _, s := range p.Skills {
		batch.Queue(`
			INSERT INTO skills (user_id, category, name, order_index)
			VALUES ($1, $2, $3, $4)`,
			u.ID, string(s.Category), s.Name, s.Position,
		)
	}
	for _, c := range p.Certifications {
		batch.Queue(`
			INSERT INTO certifications (user_id, title, issuer, date, credential_url, order_index)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, c.Title, c.Issuer, c.Date, c.CredentialURL, c.Position,
		)
	}

	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return apperror.NewInternal("failed to insert portfolio records", err)
			}
		}
		if err := results.Close(); err != nil {
			return apperror.NewInternal("failed to insert portfolio records", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit portfolio", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, name, title, bio, phone, location, website, github, linkedin, instagram, resume_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	p := &portfolio.Portfolio{}
	u := &p.Profile
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&u.ID, &u.Email, &u.Name, &u.Title, &u.Bio,
		&u.Phone, &u.Location, &u.Website, &u.GitHub, &u.LinkedIn, &u.Instagram, &u.ResumeURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if p.Projects, err = r.listProjects(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Experience, err = r.listExperience(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Education, err = r.listEducation(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Skills, err = r.listSkills(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Certifications, err = r.listCertifications(ctx, ownerID); err != nil {
		return nil, err
	}
	return p, nil
}

// queryOwned runs an ordered select over one child table and scans every row.
func queryOwned[T any](ctx context.Context, db *pgxpool.Pool, table, columns string, ownerID uuid.UUID, scan func(pgx.Rows, *T) error) ([]T, error) {
	sql, args, err := psqlPortfolio.Select(columns).
		From(table).
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("order_index ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build "+table+" query", err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query "+table, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, apperror.NewInternal("failed to scan "+table+" row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating "+table+" rows", err)
	}
	return items, nil
}

func (r *postgresPortfolioRepo) listProjects(ctx context.Context, ownerID uuid.UUID) ([]portfolio.Project, error) {
	return queryOwned(ctx, r.db, "projects",
		"id, user_id, title, company, duration, description, technologies, achievements, order_index, created_at",
		ownerID, func(rows pgx.Rows, p *portfolio.Project) error {
			return rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Company, &p.Duration, &p.Description,
				&p.Technologies, &p.Achievements, &p.Position, &p.CreatedAt)
		})
}

func (r *postgresPortfolioRepo) listExperience(ctx context.Context, ownerID uuid.UUID) ([]portfolio.Experience, error) {
	return queryOwned(ctx, r.db, "experience",
		"id, user_id, title, company, location, duration, responsibilities, order_index, created_at",
		ownerID, func(rows pgx.Rows, e *portfolio.Experience) error {
			return rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Company, &e.Location, &e.Duration,
				&e.Responsibilities, &e.Position, &e.CreatedAt)
		})
}

func (r *postgresPortfolioRepo) listEducation(ctx context.Context, ownerID uuid.UUID) ([]portfolio.Education, error) {
	return queryOwned(ctx, r.db, "education",
		"id, user_id, degree, institution, duration, grade, order_index, created_at",
		ownerID, func(rows pgx.Rows, e *portfolio.Education) error {
			return rows.Scan(&e.ID, &e.OwnerID, &e.Degree, &e.Institution, &e.Duration, &e.Grade,
				&e.Position, &e.CreatedAt)
		})
}

func (r *postgresPortfolioRepo) listSkills(ctx context.Context, ownerID uuid.UUID) ([]portfolio.Skill, error) {
	return queryOwned(ctx, r.db, "skills",
		"id, user_id, category, name, order_index, created_at",
		ownerID, func(rows pgx.Rows, s *portfolio.Skill) error {
			var category string
			if err := rows.Scan(&s.ID, &s.OwnerID, &category, &s.Name, &s.Position, &s.CreatedAt); err != nil {
				return err
			}
			s.Category = portfolio.SkillCategory(category)
			return nil
		})
}

func (r *postgresPortfolioRepo) listCertifications(ctx context.Context, ownerID uuid.UUID) ([]portfolio.Certification, error) {
	return queryOwned(ctx, r.db, "certifications",
		"id, user_id, title, issuer, date, credential_url, order_index, created_at",
		ownerID, func(rows pgx.Rows, c *portfolio.Certification) error {
			return rows.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Issuer, &c.Date, &c.CredentialURL,
				&c.Position, &c.CreatedAt)
		})
}
