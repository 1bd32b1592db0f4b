package eligibility

import (
	"log/slog"

	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
)

// Filter narrows roster to the members whose domain the category accepts.
// It fails open: an unknown category or an empty match returns the whole
// roster, since domain tags are optional and must never block a draw.
func Filter(roster []member.Member, category task.Category) []member.Member {
	domains, ok := task.DomainsFor(category)
	if !ok {
		slog.Warn("eligibility: unknown task category, using full roster", "category", category, "roster_size", len(roster))
		return roster
	}

	accepted := make(map[member.Domain]struct{}, len(domains))
	for _, d := range domains {
		accepted[d] = struct{}{}
	}

	pool := make([]member.Member, 0, len(roster))
	for _, m := range roster {
		if _, ok := accepted[m.Domain]; ok {
			pool = append(pool, m)
		}
	}

	if len(pool) == 0 {
		slog.Warn("eligibility: no members match category, using full roster", "category", category, "roster_size", len(roster))
		return roster
	}
	return pool
}

// Addresses returns the non-empty addresses of pool, in order.
func Addresses(pool []member.Member) []string {
	out := make([]string, 0, len(pool))
	for _, m := range pool {
		if m.Address != "" {
			out = append(out, m.Address)
		}
	}
	return out
}
