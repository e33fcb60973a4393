package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fontstage/fonts"
	"fontstage/page"
	"fontstage/state"
)

// Run is the action of generate subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no site snapshot has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles generation independently of CLI framework.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	site, err := page.Load(src)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.Store("site/"+filepath.Base(src), src)
		env.Rpt.StoreData("site/tree.txt", []byte(site.Dump()))
	}

	catalog, err := buildCatalog(&env.Cfg.Catalog, env.Rpt, log)
	if err != nil {
		return fmt.Errorf("unable to prepare font catalog: %w", err)
	}

	notices := 0
	notifier := fonts.NoticeFunc(func(message string) {
		notices++
		log.Warn(message)
	})

	gen, err := NewGenerator(&env.Cfg.Staging, catalog, notifier, log)
	if err != nil {
		return err
	}
	outputs, err := gen.Render(ctx, site)
	if err != nil {
		return err
	}

	// decide on every name before writing anything
	paths := make([]string, len(outputs))
	seen := make(map[string]int, len(outputs))
	for i, out := range outputs {
		path := buildOutputPath(dst, env.Cfg.Output.NameTemplate, out.Values, log)
		if j, ok := seen[path]; ok {
			return fmt.Errorf("output name collision for %s %q and %s %q: %s",
				outputs[j].Kind, outputs[j].ID, out.Kind, out.ID, path)
		}
		seen[path] = i
		if err := checkOutput(path, env.Overwrite, log); err != nil {
			return err
		}
		paths[i] = path
	}

	total := 0
	for i, out := range outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeOutput(paths[i], out, log); err != nil {
			return err
		}
		env.Rpt.Store(fmt.Sprintf("result/%s", filepath.Base(paths[i])), paths[i])
		total += out.Rules
	}
	log.Info("Stylesheets generated", zap.Int("files", len(outputs)), zap.Int("rules", total), zap.Int("notices", notices))
	return nil
}

// checkOutput refuses to replace existing file unless overwrite is allowed.
func checkOutput(path string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", path)
		}
		log.Warn("Overwriting existing file", zap.String("file", path))
		return nil
	case os.IsNotExist(err):
		return nil
	default:
		return err
	}
}

func writeOutput(path string, out Output, log *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	if _, err := out.Sheet.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to write output file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to write output file %s: %w", path, err)
	}
	log.Debug("Stylesheet written", zap.String("kind", out.Kind), zap.String("id", out.ID), zap.Int("rules", out.Rules), zap.String("file", path))
	return nil
}

// Validate is the action of validate subcommand: it checks font family
// configuration and reports every problem found.
func Validate(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("validate")

	if !fonts.Validate(env.Cfg.Staging.FontFamilies, fonts.LogNotifier(log)) {
		return ErrInvalidFamilies
	}
	families, err := fonts.NewFamilies(env.Cfg.Staging.FontFamilies)
	if err != nil {
		return err
	}
	host, err := buildCatalog(&env.Cfg.Catalog, nil, log)
	if err != nil {
		return fmt.Errorf("unable to prepare font catalog: %w", err)
	}
	staged := families.Catalog()

	resolver := fonts.NewResolver(families, env.Cfg.Staging.FallbackFontFamily)
	log.Info("Font families", zap.Int("staged", len(families)), zap.Int("host", len(host)), zap.String("generic", resolver.Generic()))
	for _, name := range families.Names() {
		e, _ := families.Lookup(name)
		fields := []zap.Field{
			zap.String("family", name),
			zap.Stringer("kind", staged.Kind(name)),
			zap.String("stage", e.Stage),
			zap.String("fallback", resolver.Fallback(name)),
		}
		if kind, ok := host[name]; ok {
			fields = append(fields, zap.Stringer("host", kind))
		}
		log.Info("Font family configured", fields...)
	}
	return nil
}
