package importer

import (
	"fmt"

	"gorm.io/gorm"
)

// ensureFTS5 verifies the connected SQLite build carries the fts5
// module before any store rebuild starts. go-sqlite3 compiles FTS5 in
// only under the sqlite_fts5 build tag, so a stock binary would
// otherwise fail halfway through the DDL with an opaque driver error.
func ensureFTS5(db *gorm.DB) error {
	var n int64
	if err := db.Raw(
		"SELECT COUNT(*) FROM pragma_module_list WHERE name = ?", "fts5",
	).Scan(&n).Error; err != nil {
		return fmt.Errorf("failed to probe sqlite modules: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite was built without the fts5 module; rebuild with -tags sqlite_fts5")
	}
	return nil
}
