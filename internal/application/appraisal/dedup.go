package appraisal

import (
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
)

// KeySet holds natural keys already claimed, by persisted records or by
// earlier rows of the batch being deduplicated.
type KeySet map[string]struct{}

func NewKeySet(existing []domain.Key) KeySet {
	set := make(KeySet, len(existing))
	for _, key := range existing {
		set[key.String()] = struct{}{}
	}
	return set
}

// Deduplicate drops every row whose natural key is already in seen, in a
// single forward pass. Kept rows add their key to seen, so a later row with
// the same key in the same batch is dropped too.
func Deduplicate(rows []domain.ValidationResult, seen KeySet) ([]domain.ValidationResult, int) {
	unique := make([]domain.ValidationResult, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		key, ok := r.Row.Key()
		if !ok {
			unique = append(unique, r)
			continue
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, r)
	}
	return unique, dropped
}
