package generate

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"fontstage/config"
	"fontstage/css"
	"fontstage/fonts"
)

// buildCatalog collects what host knows about fonts: @font-face rules of
// configured stylesheets first, then font manager database on top.
func buildCatalog(cfg *config.CatalogConfig, rpt *config.Report, log *zap.Logger) (fonts.Catalog, error) {
	parser := css.NewParser(log)

	sheets := make([]*css.Stylesheet, 0, len(cfg.Stylesheets))
	for _, path := range cfg.Stylesheets {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read font stylesheet %q: %w", path, err)
		}
		rpt.Store("catalog/"+config.CleanFileName(path), path)
		sheets = append(sheets, parser.Parse(data, path))
	}
	catalog := fonts.CatalogFromStylesheets(sheets...)

	if len(cfg.Database) > 0 {
		stored, err := fonts.LoadCatalog(cfg.Database, log)
		if err != nil {
			return nil, err
		}
		rpt.Store("catalog/fonts.db", cfg.Database)
		catalog.Merge(stored)
	}

	log.Debug("Font catalog prepared", zap.Int("stylesheets", len(sheets)), zap.Int("families", len(catalog)))
	return catalog, nil
}
