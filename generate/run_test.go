package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"fontstage/config"
	"fontstage/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T, families any) (context.Context, *state.LocalEnv) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Staging.FontFamilies = families

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	return ctx, env
}

func TestProcess(t *testing.T) {
	ctx, env := setupTestEnv(t, brandFamilies())
	dst := t.TempDir()

	if err := process(ctx, testSite, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, name := range []string{"global.css", "kit-5-default-kit.css", "page-42-home-page.css"} {
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("expected output %s: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), "font-family: Brand Initial;") {
			t.Errorf("%s has no staged rules:\n%s", name, data)
		}
	}

	page, _ := os.ReadFile(filepath.Join(dst, "page-42-home-page.css"))
	if !strings.Contains(string(page), "color: red;") {
		t.Errorf("existing document CSS lost:\n%s", page)
	}
}

func TestProcess_InvalidConfigWritesNothing(t *testing.T) {
	ctx, env := setupTestEnv(t, map[string]any{"Brand": ""})
	dst := t.TempDir()

	if err := process(ctx, testSite, dst, env.Log); !errors.Is(err, ErrInvalidFamilies) {
		t.Fatalf("process() error = %v, want ErrInvalidFamilies", err)
	}
	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("nothing should be written, found %d entries", len(entries))
	}
}

func TestProcess_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t, brandFamilies())
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(dst, "global.css"), []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	err := process(ctx, testSite, dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("process() error = %v, want existing file error", err)
	}

	env.Overwrite = true
	if err := process(ctx, testSite, dst, env.Log); err != nil {
		t.Fatalf("process() with overwrite error = %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dst, "global.css"))
	if strings.Contains(string(data), "stale") {
		t.Error("global.css was not overwritten")
	}
}

func TestProcess_ExistingLastOutputWritesNothing(t *testing.T) {
	ctx, env := setupTestEnv(t, brandFamilies())
	dst := t.TempDir()

	last := filepath.Join(dst, "page-42-home-page.css")
	if err := os.WriteFile(last, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	err := process(ctx, testSite, dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("process() error = %v, want existing file error", err)
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("only pre-existing file expected, found %v", names)
	}
	if data, _ := os.ReadFile(last); string(data) != "stale" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestProcess_NameCollision(t *testing.T) {
	ctx, env := setupTestEnv(t, brandFamilies())
	env.Cfg.Output.NameTemplate = "styles.css"

	err := process(ctx, testSite, t.TempDir(), env.Log)
	if err == nil || !strings.Contains(err.Error(), "collision") {
		t.Errorf("process() error = %v, want name collision", err)
	}
}

func TestProcess_Catalog(t *testing.T) {
	ctx, env := setupTestEnv(t, brandFamilies())

	sheet := filepath.Join(t.TempDir(), "fonts.css")
	if err := os.WriteFile(sheet, []byte(`@font-face { font-family: "Comic Sans"; src: url("/fonts/comic.woff2"); }`), 0644); err != nil {
		t.Fatal(err)
	}
	env.Cfg.Catalog.Stylesheets = []string{sheet}
	if err := process(ctx, testSite, t.TempDir(), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	env.Cfg.Catalog.Stylesheets = []string{filepath.Join(t.TempDir(), "absent.css")}
	if err := process(ctx, testSite, t.TempDir(), env.Log); err == nil {
		t.Error("expected error for absent catalog stylesheet")
	}
}

func TestProcess_MissingSite(t *testing.T) {
	ctx, env := setupTestEnv(t, brandFamilies())
	if err := process(ctx, filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir(), env.Log); err == nil {
		t.Error("expected error for absent site snapshot")
	}
}

func TestBuildCatalog(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "fonts.css")
	if err := os.WriteFile(sheet, []byte(`
@font-face { font-family: "Roboto"; src: url("https://fonts.gstatic.com/s/roboto.woff2"); }
@font-face { font-family: "Brand"; src: url("/fonts/brand.woff2"); }
`), 0644); err != nil {
		t.Fatal(err)
	}

	cat, err := buildCatalog(&config.CatalogConfig{Stylesheets: []string{sheet}}, nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("buildCatalog() error = %v", err)
	}
	if cat.Kind("Roboto").String() != "googlefonts" || cat.Kind("Brand").String() != "local" {
		t.Errorf("unexpected catalog %v", cat)
	}

	if _, err := buildCatalog(&config.CatalogConfig{Database: filepath.Join(dir, "absent.db")}, nil, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for absent database")
	}
}

func TestValidateAction(t *testing.T) {
	ctx, env := setupTestEnv(t, map[string]any{
		"Brand": []any{"Brand Initial", "Georgia, serif"},
		"Mono":  "Mono Initial",
	})
	sheet := filepath.Join(t.TempDir(), "fonts.css")
	if err := os.WriteFile(sheet, []byte(`@font-face { font-family: "Brand"; src: url("/fonts/brand.woff2"); }`), 0644); err != nil {
		t.Fatal(err)
	}
	env.Cfg.Catalog.Stylesheets = []string{sheet}
	env.Cfg.Staging.FallbackFontFamily = "serif"

	core, logs := observer.New(zap.InfoLevel)
	env.Log = zap.New(core)

	if err := Validate(ctx, nil); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	summary := logs.FilterMessage("Font families").All()
	if len(summary) != 1 || summary[0].ContextMap()["generic"] != "serif" {
		t.Fatalf("unexpected summary %v", summary)
	}
	configured := logs.FilterMessage("Font family configured").All()
	if len(configured) != 2 {
		t.Fatalf("expected 2 configured families, got %d", len(configured))
	}
	brand := configured[0].ContextMap()
	if brand["family"] != "Brand" || brand["kind"] != "staged" || brand["host"] != "local" || brand["fallback"] != "Georgia, serif" {
		t.Errorf("unexpected Brand entry %v", brand)
	}
	mono := configured[1].ContextMap()
	if mono["family"] != "Mono" || mono["fallback"] != "serif" {
		t.Errorf("unexpected Mono entry %v", mono)
	}
	if _, ok := mono["host"]; ok {
		t.Errorf("Mono is not known to host: %v", mono)
	}
}

func TestValidateAction_Invalid(t *testing.T) {
	ctx, _ := setupTestEnv(t, map[string]any{"Brand": ""})
	if err := Validate(ctx, nil); !errors.Is(err, ErrInvalidFamilies) {
		t.Errorf("Validate() error = %v, want ErrInvalidFamilies", err)
	}
}
