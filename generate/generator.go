// Package generate produces staged font stylesheets for a site snapshot: one
// site-wide stylesheet with widget type defaults and one per document with
// element overrides merged into CSS document already had.
package generate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fontstage/config"
	"fontstage/css"
	"fontstage/fonts"
	"fontstage/page"
	"fontstage/stage"
)

// KindGlobal marks site-wide stylesheet.
const KindGlobal = "global"

// ErrInvalidFamilies is returned when font family configuration does not
// pass validation. Nothing is generated in this case.
var ErrInvalidFamilies = errors.New("font family configuration is invalid")

// Output is a single generated stylesheet.
type Output struct {
	Values
	Sheet *css.Stylesheet
	Rules int
}

// Generator runs both passes over a site.
type Generator struct {
	walker *stage.Walker
	parser *css.Parser
	log    *zap.Logger
}

// NewGenerator validates font family configuration and prepares generator.
// Diagnostics (validation problems and unregistered fonts) go to notifier, to
// log when notifier is nil.
func NewGenerator(cfg *config.StagingConfig, catalog fonts.Catalog, notifier fonts.Notifier, log *zap.Logger) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = fonts.LogNotifier(log)
	}

	if !fonts.Validate(cfg.FontFamilies, notifier) {
		return nil, ErrInvalidFamilies
	}
	families, err := fonts.NewFamilies(cfg.FontFamilies)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFamilies, err)
	}

	emitter := stage.NewEmitter(
		fonts.NewResolver(families, cfg.FallbackFontFamily),
		stage.NewGuards(cfg.ClassStage1, cfg.ClassStage2),
		log,
		stage.WithCatalog(catalog),
		stage.WithNotifier(notifier),
	)
	return &Generator{
		walker: stage.NewWalker(emitter, cfg.WidgetClassPrefix, log),
		parser: css.NewParser(log),
		log:    log.Named("generate"),
	}, nil
}

// Render produces site-wide stylesheet followed by stylesheets of every
// document in snapshot order.
func (g *Generator) Render(ctx context.Context, site *page.Site) ([]Output, error) {
	outputs := make([]Output, 0, len(site.Documents)+1)

	global := css.NewStylesheet()
	n := g.walker.GlobalPass(site, site, global)
	outputs = append(outputs, Output{Values: Values{Kind: KindGlobal}, Sheet: global, Rules: n})

	for _, doc := range site.AllDocuments() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheet := css.NewStylesheet()
		if existing := doc.CSS(); len(existing) > 0 {
			sheet = g.parser.Parse([]byte(existing), "document "+doc.ID())
			for _, w := range sheet.Warnings {
				g.log.Warn("Document stylesheet problem", zap.String("id", doc.ID()), zap.String("warning", w))
			}
		}
		n := g.walker.DocumentPass(doc, sheet)
		outputs = append(outputs, Output{
			Values: Values{Kind: doc.Type(), ID: doc.ID(), Title: doc.Title()},
			Sheet:  sheet,
			Rules:  n,
		})
	}
	return outputs, nil
}
