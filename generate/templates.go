package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"fontstage/config"
	"fontstage/misc"
)

// Values is a struct that holds variables we make available for output name
// template expansion.
type Values struct {
	App   string
	Kind  string
	ID    string
	Title string
}

func expandTemplate(name, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()
	funcMap["slug"] = slug.Make

	tmpl, err := template.New(name).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.App = misc.GetAppName()

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildOutputPath returns output file path for a stylesheet. Expanded name
// may contain subdirectories, every path segment is cleaned. When template
// cannot be expanded default name is used.
func buildOutputPath(dst, nameTemplate string, values Values, log *zap.Logger) string {
	name, err := expandTemplate(config.NameTemplateFieldName, nameTemplate, values)
	if err != nil {
		log.Warn("Unable to prepare output filename", zap.Error(err))
	}

	parts := []string{dst}
	for _, s := range splitPath(filepath.FromSlash(strings.TrimSpace(name))) {
		if s == "." || s == ".." {
			continue
		}
		parts = append(parts, config.CleanFileName(s))
	}
	if len(parts) == 1 {
		return filepath.Join(dst, defaultFileName(values))
	}
	if !strings.EqualFold(filepath.Ext(parts[len(parts)-1]), ".css") {
		parts[len(parts)-1] += ".css"
	}
	return filepath.Join(parts...)
}

func defaultFileName(values Values) string {
	name := values.Kind
	if len(values.ID) > 0 {
		name += "-" + values.ID
	}
	return config.CleanFileName(name) + ".css"
}

func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	var segments []string
	for head, tail := filepath.Split(path); len(tail) > 0; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if len(head) == 0 {
			break
		}
	}
	return segments
}
