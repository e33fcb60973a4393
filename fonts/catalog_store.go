package fonts

import (
	"fmt"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// LoadCatalog reads font-manager snapshot from SQLite database. The database
// is expected to have table "fonts" with "family" and "kind" text columns.
// Rows with unrecognized kinds are kept as KindUnknown.
func LoadCatalog(path string, log *zap.Logger) (Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open font catalog %q: %w", path, err)
	}
	defer conn.Close()

	cat := make(Catalog)
	err = sqlitex.Execute(conn, `SELECT family, kind FROM fonts`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			family, name := stmt.ColumnText(0), stmt.ColumnText(1)
			if len(family) == 0 {
				return nil
			}
			kind, err := ParseKind(name)
			if err != nil {
				log.Debug("Unknown font kind in catalog", zap.String("family", family), zap.Error(err))
			}
			cat[family] = kind
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read font catalog %q: %w", path, err)
	}
	log.Debug("Font catalog loaded", zap.String("path", path), zap.Int("families", len(cat)))
	return cat, nil
}
