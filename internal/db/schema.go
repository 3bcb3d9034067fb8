package db

import (
	_ "embed"
	"strings"
)

//go:embed schema.sql
var Schema string

// Statements splits Schema into the statements it is made of, drivers like
// pgx refuse to run more than one statement per Exec.
func Statements() []string {
	var out []string
	for _, stmt := range strings.Split(Schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// DateLayout is how dates are stored.
const DateLayout = "2006-01-02"
