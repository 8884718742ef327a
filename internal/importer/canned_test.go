package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n", '|'},
		{"empty defaults to comma", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, "export.txt", tt.content)
			got, err := sniffDelimiter(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCannedExport(t *testing.T) {
	header := strings.Join([]string{
		"Ticket ID", "Ticket Number", "Ticket Name", "Date Ticket Created",
		"Action Description", "Action Type", "Knowledge Base Category Name",
		"Knowledge Base Parent Category Name", "Is KnowledgeBase",
	}, "\t")
	rows := []string{
		header,
		"1\t4100\tHow to reset a password\t5/1/2023 8:00 AM\t<p>Use the reset link.</p>\tDescription\tAccounts\tGeneral Support\tTrue",
		"2\t\tMissing body row\t5/2/2023 8:00 AM\t\tDescription\tAccounts\tGeneral Support\tTrue",
		"3\t4101\t\t5/3/2023 8:00 AM\t<p>No title.</p>\tDescription\tAccounts\tGeneral Support\tTrue",
	}
	path := writeTempCSV(t, "canned.tsv", strings.Join(rows, "\n")+"\n")

	articles, skipped, err := loadCannedExport(path)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, articles, 1)

	article := articles[0]
	assert.Equal(t, "How to reset a password", article.Title)
	require.NotNil(t, article.TicketNumber)
	assert.Equal(t, int64(4100), *article.TicketNumber)
	assert.Equal(t, "Use the reset link.", article.BodyText)
	assert.Equal(t, "Accounts", article.CategoryName)
	assert.Equal(t, "General Support", article.ParentCategoryName)
	require.NotNil(t, article.DateCreated)
	assert.Equal(t, "2023-05-01 08:00:00", *article.DateCreated)
}
