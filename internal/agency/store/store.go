// Package store persists districts, distributor types, distributors and
// regulations. Two backends share one contract: InMemory for development and
// tests, and SQLStore for PostgreSQL or SQLite.
//
// Stores report storage facts with the sentinel errors:
//   - sentinel.ErrNotFound when the addressed row does not exist
//   - sentinel.ErrConflict when a unique name is already taken
//   - sentinel.ErrInvalidState when a reference points at a missing row or a
//     referenced row is still in use
//
// Every validate-then-write runs inside RunInTx so the checks and the write
// observe the same snapshot.
package store

import (
	"context"
	"strings"

	"distributors/internal/agency/models"
	pstrings "distributors/pkg/platform/strings"
)

// matchesKeyword reports whether any searchable distributor field contains
// keyword, ignoring case.
func matchesKeyword(d *models.Distributor, keyword string) bool {
	for _, field := range []string{d.Name, d.Phone, d.Address, d.Email} {
		if pstrings.ContainsFold(field, keyword) {
			return true
		}
	}
	return false
}

// likePattern builds a case-folded substring pattern for SQL LIKE, escaping
// the LIKE wildcards in keyword.
func likePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(keyword)) + "%"
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}
