//go:build integration

// Integration tests for the Postgres record source. Requires Docker.
package record

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testSource *PostgresSource

const testSchema = `
CREATE TABLE "Project" (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	tags TEXT[] NOT NULL DEFAULT '{}',
	technologies TEXT,
	github_url TEXT,
	live_url TEXT,
	featured BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE "Post" (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT,
	tags TEXT[] NOT NULL DEFAULT '{}',
	excerpt TEXT,
	published BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE "Skill" (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	category TEXT,
	level INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE "Service" (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	price TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE "Testimonial" (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	content TEXT,
	role TEXT,
	company TEXT,
	rating INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE "Achievement" (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	category TEXT,
	date TIMESTAMPTZ,
	url TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// TestMain starts a Postgres container shared by all tests in this package.
func TestMain(m *testing.M) {
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "portfolio",
				"POSTGRES_PASSWORD": "portfolio",
				"POSTGRES_DB":       "portfolio",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to get container host: %v", err)
	}
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatalf("failed to get mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://portfolio:portfolio@%s:%s/portfolio?sslmode=disable", host, mappedPort.Port())

	if err := seed(ctx, dsn); err != nil {
		log.Fatalf("failed to seed test database: %v", err)
	}

	testSource, err = NewPostgresSource(ctx, dsn, nil)
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	code := m.Run()

	_ = testSource.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func seed(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, testSchema); err != nil {
		return err
	}

	stmts := []string{
		`INSERT INTO "Project" (id, title, description, tags, technologies, featured)
		 VALUES ('1', 'Vector Search Engine', 'AI-powered semantic search using embeddings.', '{Python,AI}', 'Python, FAISS', true)`,
		`INSERT INTO "Post" (id, title, content, tags, excerpt, published)
		 VALUES ('1', 'On RAG', 'Retrieval-augmented generation explained.', '{AI}', 'RAG intro', true)`,
		`INSERT INTO "Post" (id, title, content, published)
		 VALUES ('2', 'Draft', 'Not yet.', false)`,
		`INSERT INTO "Skill" (id, name, description, category, level)
		 VALUES ('1', 'Go', 'Backend services.', 'Backend', 5)`,
		`INSERT INTO "Testimonial" (id, name, content, role, company, rating)
		 VALUES ('1', 'Jane Doe', 'Great to work with.', 'CTO', 'Acme', 5)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func TestListRecords(t *testing.T) {
	ctx := context.Background()

	raws, err := testSource.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}

	// Unpublished posts are excluded.
	if len(raws) != 4 {
		t.Fatalf("ListRecords() returned %d rows, want 4", len(raws))
	}

	records := Normalize(raws)

	byID := map[string]Record{}
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	proj, ok := byID["project_1"]
	if !ok {
		t.Fatal("project_1 missing")
	}
	if proj.Title != "Vector Search Engine" {
		t.Errorf("project title = %q", proj.Title)
	}
	if proj.Attributes["technologies"] != "Python, FAISS" {
		t.Errorf("project technologies = %v", proj.Attributes["technologies"])
	}

	testi, ok := byID["testimonial_1"]
	if !ok {
		t.Fatal("testimonial_1 missing")
	}
	if testi.Title != "Testimonial from Jane Doe" {
		t.Errorf("testimonial title = %q", testi.Title)
	}

	if _, ok := byID["post_2"]; ok {
		t.Error("unpublished post_2 should not be listed")
	}
}
