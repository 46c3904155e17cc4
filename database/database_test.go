package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/errs"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds SQL against the postgres dialect without a server and
// records the last query statement.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               NewLogger(logger.Silent),
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)
	return db, &captured
}

func TestProjectRepo_Queries(t *testing.T) {
	db, sql := dryRunDB(t)
	repo := New(db).ProjectRepo()
	ctx := context.Background()

	tests := []struct {
		name  string
		run   func() error
		parts []string
	}{
		{
			name:  "all",
			run:   func() error { _, err := repo.FindAll(ctx); return err },
			parts: []string{`FROM "projects"`, "ORDER BY COALESCE(sort_order, 0) ASC, year DESC NULLS LAST"},
		},
		{
			name:  "featured",
			run:   func() error { _, err := repo.FindFeatured(ctx); return err },
			parts: []string{"is_featured IS NULL OR is_featured = $1"},
		},
		{
			name:  "category",
			run:   func() error { _, err := repo.FindByCategory(ctx, models.CategoryReel); return err },
			parts: []string{"category = $1"},
		},
		{
			name:  "tool",
			run:   func() error { _, err := repo.FindByTool(ctx, "Premiere Pro"); return err },
			parts: []string{`"tools" ? $1`},
		},
		{
			name:  "search",
			run:   func() error { _, err := repo.Search(ctx, "wed"); return err },
			parts: []string{"title ILIKE $1 OR description ILIKE $2 OR tools::text ILIKE $3"},
		},
		{
			name:  "legacy",
			run:   func() error { _, err := repo.FindLegacy(ctx, 50); return err },
			parts: []string{"category IS NULL OR year IS NULL OR duration_sec IS NULL", "LIMIT"},
		},
		{
			name:  "by id",
			run:   func() error { _, err := repo.FindByID(ctx, uuid.New()); return err },
			parts: []string{`FROM "projects" WHERE id = $1`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.run())
			for _, part := range tt.parts {
				assert.Contains(t, *sql, part)
			}
		})
	}
}

func TestCatalogRepo_Order(t *testing.T) {
	db, sql := dryRunDB(t)
	d := New(db)
	ctx := context.Background()

	_, err := d.ExperienceRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, *sql, `FROM "experiences"`)
	assert.Contains(t, *sql, `ORDER BY "order" ASC, created_at ASC`)

	_, err = d.SkillRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, *sql, `FROM "skills"`)
	assert.Equal(t, "skill", d.SkillRepo().Entity())
}

func TestDelete_NoRowsIsNotFound(t *testing.T) {
	db, _ := dryRunDB(t)

	err := New(db).ToolRepo().Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% real\_time \\ cut`, escapeLike(`100% real_time \ cut`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestDSN(t *testing.T) {
	dsn, err := DSN(map[string]string{"DATABASE_URL": "postgres://u:p@db/portfolio"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/portfolio", dsn)

	dsn, err = DSN(map[string]string{"DB_HOST": "db", "DB_PASSWORD": "pw", "DB_SSLMODE": "disable"})
	require.NoError(t, err)
	assert.Equal(t, "host=db user=postgres password=pw dbname=portfolio port=5432 sslmode=disable", dsn)

	_, err = DSN(map[string]string{})
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}
