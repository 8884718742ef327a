package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArticle(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoadHelpDocuments(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "a-managing-cores.json", `{
		"article_title": "Managing Cores",
		"breadcrumbs": "Support Home > Core Administration > Managing Cores",
		"intended_users": ["Core Administrators", "Staff"],
		"path": "/help/managing-cores",
		"article_body": "<h1>Managing Cores</h1><p>How to manage a core facility.</p>"
	}`)
	writeArticle(t, dir, "b-missing-body.json", `{
		"article_title": "Empty One",
		"article_body": "   "
	}`)
	writeArticle(t, dir, "c-not-json.json", `{broken`)

	articles, skipped, err := loadHelpDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, articles, 1)

	article := articles[0]
	assert.Equal(t, "Managing Cores", article.Title)
	assert.Equal(t, "Core Administrators, Staff", article.IntendedUsers)
	assert.Equal(t, "a-managing-cores.json", article.Filename)
	assert.Equal(t, "Managing Cores How to manage a core facility.", article.BodyText)
	assert.NotEmpty(t, article.CreatedAt)
}

func TestLoadHelpDocumentsEmptyDirIsFatal(t *testing.T) {
	_, _, err := loadHelpDocuments(t.TempDir())
	assert.Error(t, err)
}

func TestHelpDocumentAudience(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"list", `["A", "B"]`, "A, B"},
		{"single string", `"Everyone"`, "Everyone"},
		{"absent", ``, ""},
		{"unexpected shape", `{"x": 1}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := helpDocument{}
			if tt.raw != "" {
				doc.IntendedUsers = []byte(tt.raw)
			}
			assert.Equal(t, tt.want, doc.audience())
		})
	}
}
