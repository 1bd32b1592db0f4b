package eligibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	"github.com/alanyang/dao-janny/internal/service/eligibility"
)

func m(addr string, d member.Domain) member.Member {
	return member.Member{ID: addr, Address: addr, Domain: d}
}

func TestFilter_TechnicalScenario(t *testing.T) {
	roster := []member.Member{
		m("0x1", member.DomainTechnical),
		m("0x2", member.DomainAccounting),
		m("0x3", member.DomainTechnical),
		m("0x4", member.DomainStrategy),
	}

	got := eligibility.Filter(roster, task.CategoryTechnical)

	assert.Equal(t, []member.Member{roster[0], roster[2]}, got)
}

func TestFilter_NoMatchReturnsFullRoster(t *testing.T) {
	roster := []member.Member{
		m("0x1", member.DomainAccounting),
		m("0x2", member.DomainStrategy),
		m("0x3", member.DomainBusinessDevelopment),
	}

	got := eligibility.Filter(roster, task.CategoryTechnical)

	assert.Equal(t, roster, got)
}

func TestFilter_UnknownCategoryReturnsFullRoster(t *testing.T) {
	roster := []member.Member{m("0x1", member.DomainTechnical), m("0x2", member.DomainAccounting)}

	got := eligibility.Filter(roster, task.Category("moonshots"))

	assert.Equal(t, roster, got)
}

func TestFilter_UnassignedAlwaysEligible(t *testing.T) {
	roster := []member.Member{m("0x1", member.DomainUnassigned), m("0x2", member.DomainContracts)}

	for _, c := range []task.Category{
		task.CategoryGovernance, task.CategoryTreasury, task.CategoryTechnical,
		task.CategoryCommunity, task.CategoryGrants, task.CategoryOperations,
	} {
		got := eligibility.Filter(roster, c)
		assert.Contains(t, got, roster[0], "category %s", c)
	}
}

func TestFilter_NeverEmptyForNonEmptyRoster(t *testing.T) {
	domains := []member.Domain{
		member.DomainTechnical, member.DomainContracts, member.DomainAccounting,
		member.DomainBusinessDevelopment, member.DomainStrategy, member.DomainGovernance,
		member.DomainUnassigned, member.Domain("astrology"),
	}
	categories := []task.Category{
		task.CategoryGovernance, task.CategoryTreasury, task.CategoryTechnical,
		task.CategoryCommunity, task.CategoryGrants, task.CategoryOperations, task.Category(""),
	}

	for _, d := range domains {
		for _, c := range categories {
			got := eligibility.Filter([]member.Member{m("0x1", d)}, c)
			assert.NotEmpty(t, got, "domain %s category %s", d, c)
		}
	}
}

func TestFilter_MatchesAreExactlyAccepted(t *testing.T) {
	roster := []member.Member{
		m("0x1", member.DomainGovernance),
		m("0x2", member.DomainTechnical),
		m("0x3", member.DomainStrategy),
		m("0x4", member.DomainAccounting),
	}

	got := eligibility.Filter(roster, task.CategoryGovernance)

	for _, mem := range got {
		assert.True(t, task.CategoryGovernance.Accepts(mem.Domain))
	}
	assert.Len(t, got, 2)
}

func TestFilter_EmptyRoster(t *testing.T) {
	assert.Empty(t, eligibility.Filter(nil, task.CategoryTechnical))
}

func TestAddresses(t *testing.T) {
	pool := []member.Member{m("0x1", member.DomainTechnical), {ID: "ghost"}, m("0x2", member.DomainTechnical)}
	assert.Equal(t, []string{"0x1", "0x2"}, eligibility.Addresses(pool))
}
