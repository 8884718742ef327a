//go:build !sqlite_fts5

package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportarchive/internal/infrastructure/database"
)

// Without the sqlite_fts5 build tag the driver has no fts5 module;
// imports must refuse to start instead of failing mid-rebuild.
func TestImportsRefuseWithoutFTS5Module(t *testing.T) {
	db, err := database.OpenReadWrite(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)

	err = ensureFTS5(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite_fts5")

	rows := []string{
		"Ticket Number\tTicket Name\tAction Description",
		"4100\tHow to reset a password\t<p>Use the reset link.</p>",
	}
	path := writeTempCSV(t, "canned.tsv", strings.Join(rows, "\n")+"\n")

	_, err = ImportCanned(db, path, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite_fts5")

	dir := t.TempDir()
	writeArticle(t, dir, "a.json", `{"article_title": "A", "article_body": "<p>B</p>"}`)
	_, err = ImportHelp(db, dir, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite_fts5")
}
