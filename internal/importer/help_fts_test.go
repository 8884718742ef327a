//go:build sqlite_fts5

package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportarchive/internal/infrastructure/database"
)

func TestImportHelpBuildsSearchableStore(t *testing.T) {
	db, err := database.OpenReadWrite(filepath.Join(t.TempDir(), "help.db"))
	require.NoError(t, err)

	dir := t.TempDir()
	writeArticle(t, dir, "a-managing-cores.json", `{
		"article_title": "Managing Cores",
		"breadcrumbs": "Support Home > Core Administration > Managing Cores",
		"intended_users": ["Core Administrators"],
		"article_body": "<h1>Managing Cores</h1><p>How to manage a core facility.</p>"
	}`)
	writeArticle(t, dir, "b-billing.json", `{
		"article_title": "Billing Setup",
		"breadcrumbs": "Support Home > Billing > Billing Setup",
		"article_body": "<p>Connect the billing account first.</p>"
	}`)

	result, err := ImportHelp(db, dir, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	var indexed int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM help_articles_fts").Scan(&indexed).Error)
	assert.Equal(t, int64(2), indexed)

	var titles []string
	require.NoError(t, db.Raw(`
		SELECT help_articles.title FROM help_articles
		INNER JOIN help_articles_fts ON help_articles.id = help_articles_fts.rowid
		WHERE help_articles_fts MATCH ?`, "billing").Scan(&titles).Error)
	assert.Equal(t, []string{"Billing Setup"}, titles)
}
