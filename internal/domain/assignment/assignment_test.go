package assignment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dao-janny/internal/domain/assignment"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/member"
)

func TestCancelled_NeverSelects(t *testing.T) {
	r := assignment.Cancelled("task-1", "User rejected the request")
	assert.Nil(t, r.Selected)
	assert.False(t, r.Resolved())
}

func TestResolved(t *testing.T) {
	m := member.Member{Address: "0xabc"}
	assert.True(t, assignment.Submitted("t", "0xhash", m).Resolved())
	assert.True(t, assignment.Fallback("t", m, "boom").Resolved())
	assert.False(t, assignment.Failed("t", "no eligible members").Resolved())
}

func TestEntry_Mismatch(t *testing.T) {
	tests := []struct {
		name      string
		tentative string
		confirmed string
		want      bool
	}{
		{"unconfirmed", "0xAbC", "", false},
		{"same address different case", "0xAbC", "0xabc", false},
		{"different", "0xabc", "0xdef", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := assignment.Entry{Assignee: tt.tentative, ConfirmedAssignee: tt.confirmed}
			assert.Equal(t, tt.want, e.Mismatch())
		})
	}
}

func TestEntryFromResult(t *testing.T) {
	r := assignment.Submitted("task-9", "0xhash", member.Member{Address: "0x01"})
	r.AuditID = "bafy"
	e := assignment.EntryFromResult(r, chain.OPSepolia)

	assert.Equal(t, "task-9", e.TaskID)
	assert.Equal(t, "0x01", e.Assignee)
	assert.Equal(t, "0xhash", e.TxHash)
	assert.Equal(t, "bafy", e.AuditID)
	assert.Equal(t, chain.OPSepolia, e.ChainID)
}
