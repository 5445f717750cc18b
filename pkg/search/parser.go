package search

import (
	"regexp"
	"strings"
)

// FieldType names a filter field that can be written inline in a query
type FieldType string

const (
	FieldTypeField FieldType = "type"
	FieldStatus    FieldType = "status"
)

// Parser turns a search bar string into Criteria. Words of the form
// type:<value> or status:<value> set the matching selector; everything else
// is joined back together as the free-text title query.
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.*)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// ParseQuery parses with a default parser
func ParseQuery(input string) Criteria {
	return NewParser().Parse(input)
}

// Parse parses a query string. Unknown field prefixes are treated as
// plain text so titles containing a colon still search as typed.
func (p *Parser) Parse(input string) Criteria {
	var criteria Criteria
	var text []string

	for _, token := range p.tokenize(input) {
		if m := p.fieldPattern.FindStringSubmatch(token); m != nil {
			value := p.unquote(m[2])
			switch FieldType(strings.ToLower(m[1])) {
			case FieldTypeField:
				criteria.Type = value
				continue
			case FieldStatus:
				criteria.Status = value
				continue
			}
		}
		text = append(text, p.unquote(token))
	}

	criteria.Text = strings.Join(text, " ")
	return criteria
}

// Format renders criteria back into query syntax
func Format(c Criteria) string {
	var parts []string
	if c.Type != "" {
		parts = append(parts, "type:"+quoteIfNeeded(c.Type))
	}
	if c.Status != "" {
		parts = append(parts, "status:"+quoteIfNeeded(c.Status))
	}
	if t := strings.TrimSpace(c.Text); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}

// tokenize splits the input on spaces outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' || r == '\t':
			if inQuotes {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func (p *Parser) unquote(s string) string {
	if m := p.quotedPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}
