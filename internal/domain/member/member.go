package member

import "strings"

// Domain is a member's declared subject-matter competency.
type Domain string

const (
	DomainTechnical           Domain = "technical"
	DomainContracts           Domain = "contracts"
	DomainAccounting          Domain = "accounting"
	DomainBusinessDevelopment Domain = "business_development"
	DomainStrategy            Domain = "strategy"
	DomainGovernance          Domain = "governance"
	DomainUnassigned          Domain = "unassigned"
)

// Member is a read-only roster snapshot entry. Address is the identity key.
type Member struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
	Domain      Domain `json:"domain"`
}

// Normalize resolves the optional fields of a roster entry once, at the
// collaborator boundary: an empty ID becomes the address and an empty domain
// becomes unassigned.
func Normalize(m Member) Member {
	m.Address = strings.TrimSpace(m.Address)
	m.Domain = Domain(strings.ToLower(strings.TrimSpace(string(m.Domain))))
	if m.ID == "" {
		m.ID = m.Address
	}
	if m.Domain == "" {
		m.Domain = DomainUnassigned
	}
	return m
}

// NormalizeAll applies Normalize to every member, drops entries without an
// address and keeps only the first entry per address. Addresses compare
// case-insensitively.
func NormalizeAll(roster []Member) []Member {
	out := make([]Member, 0, len(roster))
	seen := make(map[string]struct{}, len(roster))
	for _, m := range roster {
		m = Normalize(m)
		if m.Address == "" {
			continue
		}
		key := strings.ToLower(m.Address)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Label is the human-facing name: display name when set, address otherwise.
func (m Member) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Address
}
