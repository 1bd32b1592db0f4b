package task

import (
	"strings"

	"github.com/alanyang/dao-janny/internal/domain/member"
)

// Category is the proposal category a task was derived from.
type Category string

const (
	CategoryGovernance Category = "governance"
	CategoryTreasury   Category = "treasury"
	CategoryTechnical  Category = "technical"
	CategoryCommunity  Category = "community"
	CategoryGrants     Category = "grants"
	CategoryOperations Category = "operations"
)

// DefaultCategory is used when a proposal carries no recognisable category.
const DefaultCategory = CategoryOperations

// DomainMapping is the static category → eligible member domains table.
// Every entry includes member.DomainUnassigned so untagged members stay eligible.
var DomainMapping = map[Category][]member.Domain{
	CategoryGovernance: {member.DomainGovernance, member.DomainStrategy, member.DomainUnassigned},
	CategoryTreasury:   {member.DomainAccounting, member.DomainBusinessDevelopment, member.DomainStrategy, member.DomainUnassigned},
	CategoryTechnical:  {member.DomainTechnical, member.DomainContracts, member.DomainUnassigned},
	CategoryCommunity:  {member.DomainBusinessDevelopment, member.DomainStrategy, member.DomainUnassigned},
	CategoryGrants:     {member.DomainAccounting, member.DomainBusinessDevelopment, member.DomainStrategy, member.DomainUnassigned},
	CategoryOperations: {member.DomainBusinessDevelopment, member.DomainStrategy, member.DomainUnassigned},
}

// DomainsFor returns the eligible domains for c. ok is false for unknown categories.
func DomainsFor(c Category) (domains []member.Domain, ok bool) {
	domains, ok = DomainMapping[Category(strings.ToLower(string(c)))]
	return domains, ok
}

// Accepts reports whether a member of domain d may be drawn for category c.
func (c Category) Accepts(d member.Domain) bool {
	domains, ok := DomainsFor(c)
	if !ok {
		return false
	}
	for _, allowed := range domains {
		if allowed == d {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Eligibility lists the assignment modes a task allows.
type Eligibility struct {
	OptIn      bool `json:"opt_in"`
	RandomDraw bool `json:"random_draw"`
}

// Task is an execution task derived from an approved proposal. It is a read-only
// snapshot for the duration of one assignment.
type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    Category    `json:"category"`
	Priority    Priority    `json:"priority"`
	Eligibility Eligibility `json:"eligibility"`
	Assignee    string      `json:"assignee,omitempty"`
}

// Normalize resolves defaults once at the collaborator boundary so downstream
// code never re-derives them.
func Normalize(t Task) Task {
	t.ID = strings.TrimSpace(t.ID)
	if t.Title == "" {
		t.Title = "Untitled Task"
	}
	t.Category = Category(strings.ToLower(string(t.Category)))
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t
}

// categoryKeywords drives CategoryFromText. Order matters: the first category
// with a matching keyword wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryGovernance, []string{"governance", "constitution", "voting", "delegate", "parameters", "rules", "policy"}},
	{CategoryTreasury, []string{"treasury", "funding", "budget", "financial", "allocation", "spend", "payment"}},
	{CategoryTechnical, []string{"technical", "upgrade", "protocol", "smart contract", "implementation", "development", "code"}},
	{CategoryCommunity, []string{"community", "event", "marketing", "outreach", "education", "communication"}},
	{CategoryGrants, []string{"grant", "support", "research", "ecosystem", "builder"}},
	{CategoryOperations, []string{"operations", "administrative", "management", "process", "workflow"}},
}

// CategoryFromText classifies a proposal by keyword, defaulting to operations.
func CategoryFromText(title, description string) Category {
	text := strings.ToLower(title + " " + description)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}
	return DefaultCategory
}
