package recurring

import (
	"sort"
	"strings"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// Normalizer maps a transaction to the stable identity of the series it
// belongs to. Returning an empty string excludes the transaction.
type Normalizer func(model.Transaction) string

// NormalizeLabel applies the canonical label normalization: lowercase with
// surrounding whitespace trimmed.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// DefaultNormalizer keys a transaction by its cleaned merchant name, falling
// back to the raw description when no merchant name is available.
func DefaultNormalizer(txn model.Transaction) string {
	if txn.MerchantName != "" {
		return NormalizeLabel(txn.MerchantName)
	}
	return NormalizeLabel(txn.Name)
}

// GroupSeries partitions a transaction feed into candidate series keyed by
// the normalizer. Each group is sorted ascending by date; no transaction is
// assigned to more than one series. The input slice is not modified.
func GroupSeries(txns []model.Transaction, normalize Normalizer) map[string][]model.Transaction {
	if normalize == nil {
		normalize = DefaultNormalizer
	}

	groups := make(map[string][]model.Transaction)
	for _, txn := range txns {
		key := normalize(txn)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], txn)
	}

	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
	}

	return groups
}
