package record

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// PostgresSource reads portfolio rows from the site's relational store, one
// query per category.
type PostgresSource struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresSource opens a connection pool and verifies connectivity.
func NewPostgresSource(ctx context.Context, databaseURL string, logger *slog.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSource{db: db, logger: logger}, nil
}

// Close closes the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// ListRecords loads every category. A failing category query aborts the whole
// load so a refresh never installs a partial record set.
func (s *PostgresSource) ListRecords(ctx context.Context) ([]Raw, error) {
	var rows []Raw

	loaders := []func(context.Context) ([]Raw, error){
		s.listProjects,
		s.listPosts,
		s.listSkills,
		s.listServices,
		s.listTestimonials,
		s.listAchievements,
	}

	for _, load := range loaders {
		batch, err := load(ctx)
		if err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
	}

	s.logger.Info("loaded portfolio rows", "count", len(rows))
	return rows, nil
}

func (s *PostgresSource) listProjects(ctx context.Context) ([]Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, tags, technologies, github_url, live_url, featured, created_at
		FROM "Project"`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var (
			id, title                       string
			description                     sql.NullString
			tags                            []string
			technologies, githubURL, liveURL sql.NullString
			featured                        bool
			createdAt                       time.Time
		)
		if err := rows.Scan(&id, &title, &description, pq.Array(&tags), &technologies, &githubURL, &liveURL, &featured, &createdAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, Raw{
			Category: CategoryProject,
			SourceID: id,
			Title:    title,
			Body:     description.String,
			Tags:     tags,
			Extra: map[string]any{
				"technologies": technologies.String,
				"github_url":   githubURL.String,
				"live_url":     liveURL.String,
				"featured":     featured,
				"created_at":   createdAt.Format(time.RFC3339),
			},
		})
	}
	return out, rows.Err()
}

func (s *PostgresSource) listPosts(ctx context.Context) ([]Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, tags, excerpt, created_at
		FROM "Post" WHERE published = true`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var (
			id, title        string
			content, excerpt sql.NullString
			tags             []string
			createdAt        time.Time
		)
		if err := rows.Scan(&id, &title, &content, pq.Array(&tags), &excerpt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, Raw{
			Category: CategoryPost,
			SourceID: id,
			Title:    title,
			Body:     content.String,
			Tags:     tags,
			Extra: map[string]any{
				"excerpt":    excerpt.String,
				"created_at": createdAt.Format(time.RFC3339),
			},
		})
	}
	return out, rows.Err()
}

func (s *PostgresSource) listSkills(ctx context.Context) ([]Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, category, level, created_at
		FROM "Skill"`)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var (
			id, name              string
			description, category sql.NullString
			level                 sql.NullInt64
			createdAt             time.Time
		)
		if err := rows.Scan(&id, &name, &description, &category, &level, &createdAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		out = append(out, Raw{
			Category: CategorySkill,
			SourceID: id,
			Title:    name,
			Body:     description.String,
			Extra: map[string]any{
				"category":   category.String,
				"level":      level.Int64,
				"created_at": createdAt.Format(time.RFC3339),
			},
		})
	}
	return out, rows.Err()
}

func (s *PostgresSource) listServices(ctx context.Context) ([]Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, created_at
		FROM "Service"`)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var (
			id, name    string
			description sql.NullString
			price       sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &name, &description, &price, &createdAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, Raw{
			Category: CategoryService,
			SourceID: id,
			Title:    name,
			Body:     description.String,
			Extra: map[string]any{
				"price":      price.String,
				"created_at": createdAt.Format(time.RFC3339),
			},
		})
	}
	return out, rows.Err()
}

func (s *PostgresSource) listTestimonials(ctx context.Context) ([]Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, content, role, company, rating, created_at
		FROM "Testimonial"`)
	if err != nil {
		return nil, fmt.Errorf("query testimonials: %w", err)
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var (
			id, name               string
			content, role, company sql.NullString
			rating                 sql.NullInt64
			createdAt              time.Time
		)
		if err := rows.Scan(&id, &name, &content, &role, &company, &rating, &createdAt); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		out = append(out, Raw{
			Category: CategoryTestimonial,
			SourceID: id,
			Body:     content.String,
			Extra: map[string]any{
				"author":     name,
				"role":       role.String,
				"company":    company.String,
				"rating":     rating.Int64,
				"created_at": createdAt.Format(time.RFC3339),
			},
		})
	}
	return out, rows.Err()
}

func (s *PostgresSource) listAchievements(ctx context.Context) ([]Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, category, date, url, created_at
		FROM "Achievement"`)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var (
			id, title                  string
			description, category, url sql.NullString
			date                       sql.NullTime
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &title, &description, &category, &date, &url, &createdAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		extra := map[string]any{
			"category":   category.String,
			"url":        url.String,
			"created_at": createdAt.Format(time.RFC3339),
		}
		if date.Valid {
			extra["date"] = date.Time.Format(time.RFC3339)
		}
		out = append(out, Raw{
			Category: CategoryAchievement,
			SourceID: id,
			Title:    title,
			Body:     description.String,
			Extra:    extra,
		})
	}
	return out, rows.Err()
}
