package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TextArray maps a []string onto a Postgres text[] column through
// database/sql. The driver-level pgx codecs are not reachable from a plain
// *sql.DB handle, so the array literal is built and parsed here.
type TextArray []string

// Value renders the array literal, always quoting elements.
func (a TextArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		b.WriteString(s)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

// Scan parses a text[] literal back into a []string.
func (a *TextArray) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return a.scanLiteral(string(v))
	case string:
		return a.scanLiteral(v)
	default:
		return fmt.Errorf("textarray: cannot scan %T", src)
	}
}

func (a *TextArray) scanLiteral(s string) error {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return fmt.Errorf("textarray: malformed literal %q", s)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		*a = TextArray{}
		return nil
	}

	var out []string
	var cur strings.Builder
	inQuotes := false
	quoted := false
	flush := func() {
		v := cur.String()
		cur.Reset()
		if !quoted && v == "NULL" {
			out = append(out, "")
			return
		}
		out = append(out, v)
		quoted = false
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case inQuotes:
			if ch == '\\' && i+1 < len(body) {
				i++
				cur.WriteByte(body[i])
			} else if ch == '"' {
				inQuotes = false
			} else {
				cur.WriteByte(ch)
			}
		case ch == '"':
			inQuotes = true
			quoted = true
		case ch == ',':
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	flush()

	*a = out
	return nil
}
