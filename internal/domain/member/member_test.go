package member_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/dao-janny/internal/domain/member"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   member.Member
		want member.Member
	}{
		{
			name: "empty id and domain get defaults",
			in:   member.Member{Address: " 0xabc "},
			want: member.Member{ID: "0xabc", Address: "0xabc", Domain: member.DomainUnassigned},
		},
		{
			name: "explicit fields are kept",
			in:   member.Member{ID: "alice", Address: "0xabc", Domain: member.DomainTechnical, DisplayName: "Alice"},
			want: member.Member{ID: "alice", Address: "0xabc", Domain: member.DomainTechnical, DisplayName: "Alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, member.Normalize(tt.in))
		})
	}
}

func TestNormalizeAll_DropsMissingAddress(t *testing.T) {
	got := member.NormalizeAll([]member.Member{{Address: "0x1"}, {ID: "ghost"}, {Address: "0x2"}})
	assert.Len(t, got, 2)
	assert.Equal(t, "0x1", got[0].Address)
	assert.Equal(t, "0x2", got[1].Address)
}

func TestNormalizeAll_KeepsFirstEntryPerAddress(t *testing.T) {
	a := "0x00000000000000000000000000000000000000aa"
	got := member.NormalizeAll([]member.Member{
		{Address: a, DisplayName: "first", Domain: member.DomainTechnical},
		{Address: "0X00000000000000000000000000000000000000AA", Domain: member.DomainTechnical},
		{ID: "alias", Address: " " + a + " ", Domain: member.DomainAccounting},
		{Address: "0x00000000000000000000000000000000000000bb"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].DisplayName)
	assert.Equal(t, member.DomainTechnical, got[0].Domain)
	assert.Equal(t, "0x00000000000000000000000000000000000000bb", got[1].Address)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Alice", member.Member{Address: "0x1", DisplayName: "Alice"}.Label())
	assert.Equal(t, "0x1", member.Member{Address: "0x1"}.Label())
}
