package daostar

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alanyang/dao-janny/internal/domain/member"
)

type rawMember struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Name    string `json:"name"`
	ENS     string `json:"ens"`
}

type memberGroup struct {
	Members        []rawMember `json:"members"`
	OnchainCursor  string      `json:"onchain_cursor_str"`
	OffchainCursor string      `json:"offchain_cursor_str"`
}

type membersPage struct {
	Members struct {
		Members struct {
			Members  []rawMember  `json:"members"`
			Onchain  *memberGroup `json:"onchain"`
			Offchain *memberGroup `json:"offchain"`
		} `json:"members"`
	} `json:"Members"`
}

// members returns one page's entries and the cursor for the next page.
// Onchain delegates win over offchain ones when both are present.
func (p membersPage) members() ([]rawMember, string) {
	m := p.Members.Members
	switch {
	case m.Onchain != nil && len(m.Onchain.Members) > 0:
		return m.Onchain.Members, m.Onchain.OnchainCursor
	case len(m.Members) > 0:
		cursor := ""
		if m.Onchain != nil {
			cursor = m.Onchain.OnchainCursor
		}
		if cursor == "" && m.Offchain != nil {
			cursor = m.Offchain.OffchainCursor
		}
		return m.Members, cursor
	case m.Offchain != nil:
		return m.Offchain.Members, m.Offchain.OffchainCursor
	}
	return nil, ""
}

// Members fetches the DAO roster, following cursors until MaxMembers.
// Everyone comes back with the unassigned domain; tagging happens elsewhere.
func (c *Client) Members(ctx context.Context, daoID string) ([]member.Member, error) {
	base := fmt.Sprintf("%s/members/%s.eth", c.MembersURL, url.PathEscape(daoID))
	seen := make(map[string]bool)
	var roster []member.Member

	cursor := ""
	for {
		q := url.Values{"onchain": {daoID}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page membersPage
		if err := c.getJSON(ctx, base+"?"+q.Encode(), &page); err != nil {
			if len(roster) > 0 {
				slog.WarnContext(ctx, "daostar: member page failed, returning partial roster", "dao_id", daoID, "count", len(roster), "error", err)
				return roster, nil
			}
			return nil, err
		}

		raws, next := page.members()
		for _, r := range raws {
			addr := r.ID
			if addr == "" {
				addr = r.Address
			}
			if addr == "" || seen[addr] {
				continue
			}
			seen[addr] = true
			name := r.Name
			if name == "" {
				name = r.ENS
			}
			roster = append(roster, member.Normalize(member.Member{Address: addr, DisplayName: name}))
		}

		if next == "" || next == cursor || len(roster) >= MaxMembers {
			break
		}
		cursor = next
	}

	if len(roster) > MaxMembers {
		roster = roster[:MaxMembers]
	}
	return roster, nil
}
