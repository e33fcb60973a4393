package css

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media":
				query := joinTokens(parser.Values())
				rules := p.parseRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: query, Rules: rules},
				})
			case "@font-face":
				ff := p.parseFontFace(parser)
				sheet.Items = append(sheet.Items, StylesheetItem{FontFace: &ff})
			default:
				// Skip other @-rules with blocks
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "skipped at-rule block: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := strings.ToLower(string(data))
			if atRule == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				sheet.Warnings = append(sheet.Warnings, "skipped at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			for _, rule := range p.parseRuleset(parser, data) {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}
		}
	}
}

// parseRuleset reads declarations of a ruleset which has just begun and
// returns one rule per grouped selector.
func (p *Parser) parseRuleset(parser *css.Parser, data []byte) []Rule {
	selectors := splitSelectors(data, parser.Values())
	props := p.parseDeclarations(parser)

	rules := make([]Rule, 0, len(selectors))
	for _, sel := range selectors {
		// Clone properties for each rule
		propsCopy := make(map[string]Value, len(props))
		maps.Copy(propsCopy, props)
		rules = append(rules, Rule{Selector: sel, Properties: propsCopy})
	}
	return rules
}

// parseRules parses rules inside an @media block until its end.
func (p *Parser) parseRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules
		case css.BeginRulesetGrammar:
			rules = append(rules, p.parseRuleset(parser, data)...)
		case css.BeginAtRuleGrammar:
			// nested at-rules are not kept
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "skipped nested at-rule: "+string(data))
		}
	}
}

// splitSelectors extracts selector strings from token data.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := string(data)
			if gt == css.DeclarationGrammar {
				name = strings.ToLower(name)
			}
			if values := parser.Values(); len(values) > 0 {
				props[name] = parseValue(values)
			}
		}
	}
}

// parseValue converts CSS tokens to a Value detaching "!important" marker.
func parseValue(tokens []css.Token) Value {
	var v Value
	if n := len(tokens); n >= 2 {
		last, bang := tokens[n-1], tokens[n-2]
		if last.TokenType == css.IdentToken && strings.EqualFold(string(last.Data), "important") &&
			bang.TokenType == css.DelimToken && string(bang.Data) == "!" {
			v.Important = true
			tokens = tokens[:n-2]
		}
	}
	v.Raw = joinTokens(tokens)
	return v
}

// joinTokens builds raw text from tokens collapsing whitespace.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			// url(something) - the token data is the full url(...) string
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseFontFace parses an @font-face block.
func (p *Parser) parseFontFace(parser *css.Parser) FontFace {
	ff := FontFace{}

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return ff

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			val := joinTokens(values)

			switch strings.ToLower(string(data)) {
			case "font-family":
				ff.Family = unquote(val)
			case "src":
				ff.Src = val
			case "font-style":
				ff.Style = val
			case "font-weight":
				ff.Weight = val
			case "font-display":
				ff.Display = val
			}
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
