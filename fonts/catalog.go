package fonts

import (
	"fmt"
	"net/url"
	"strings"

	"fontstage/css"
)

// Kind of a font family as known to the host font manager.
type Kind int

const (
	KindUnknown Kind = iota
	KindSystem
	KindGoogle
	KindEarlyAccess
	KindTypekit
	KindRemote
	KindLocal
	KindCustom
	// KindStaged marks families configured for staged loading.
	KindStaged
)

var kindNames = map[Kind]string{
	KindUnknown:     "unregistered",
	KindSystem:      "system",
	KindGoogle:      "googlefonts",
	KindEarlyAccess: "earlyaccess",
	KindTypekit:     "typekit",
	KindRemote:      "remote",
	KindLocal:       "local",
	KindCustom:      "custom",
	KindStaged:      "staged",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts host font type name to Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%q is not a valid font kind", name)
}

// Hosted reports if fonts of this kind are served by an external web-font
// service.
func (k Kind) Hosted() bool {
	switch k {
	case KindGoogle, KindEarlyAccess, KindTypekit, KindRemote:
		return true
	}
	return false
}

// Catalog is host knowledge about font families: family name -> kind.
type Catalog map[string]Kind

// Kind returns kind of the font family, KindUnknown if catalog does not know it.
func (c Catalog) Kind(family string) Kind {
	if k, ok := c[family]; ok {
		return k
	}
	return KindUnknown
}

// Merge copies all entries of other into catalog, entries of other win.
func (c Catalog) Merge(other Catalog) {
	for family, kind := range other {
		c[family] = kind
	}
}

// googleHosts are web-font service hosts recognized in @font-face sources.
var googleHosts = map[string]Kind{
	"fonts.gstatic.com":     KindGoogle,
	"fonts.googleapis.com":  KindGoogle,
	"use.typekit.net":       KindTypekit,
	"p.typekit.net":         KindTypekit,
	"fonts.earlyaccess.org": KindEarlyAccess,
}

// CatalogFromStylesheets classifies families declared by @font-face rules.
// A family with at least one absolute http(s) or protocol-relative source is
// hosted, otherwise it is local. Hosted classification wins when the same family is declared
// several times.
func CatalogFromStylesheets(sheets ...*css.Stylesheet) Catalog {
	cat := make(Catalog)
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, ff := range sheet.FontFaces() {
			kind := classifySources(ff.URLs())
			if prev, ok := cat[ff.Family]; ok && prev.Hosted() {
				continue
			}
			cat[ff.Family] = kind
		}
	}
	return cat
}

func classifySources(urls []string) Kind {
	for _, u := range urls {
		parsed, err := url.Parse(u)
		if err != nil || !absolute(parsed) {
			continue
		}
		if kind, ok := googleHosts[strings.ToLower(parsed.Hostname())]; ok {
			return kind
		}
		return KindRemote
	}
	return KindLocal
}

func absolute(u *url.URL) bool {
	switch u.Scheme {
	case "http", "https":
		return true
	case "":
		// protocol-relative, e.g. //fonts.gstatic.com/...
		return len(u.Host) > 0
	}
	return false
}
