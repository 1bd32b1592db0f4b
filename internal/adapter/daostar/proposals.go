package daostar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/alanyang/dao-janny/internal/domain/task"
)

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	*f = flexString(b)
	return nil
}

type rawProposal struct {
	ID          flexString `json:"id"`
	ProposalID  flexString `json:"proposal_id"`
	Title       string     `json:"title"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	Status      string     `json:"status"`
	State       string     `json:"state"`
}

func (r rawProposal) status() string {
	if r.Status != "" {
		return strings.ToLower(r.Status)
	}
	return strings.ToLower(r.State)
}

// Proposals returns the DAO's closed proposals as tasks, categorised by keyword.
func (c *Client) Proposals(ctx context.Context, daoID string) ([]task.Task, error) {
	u := fmt.Sprintf("%s/proposals/%s.eth?%s", c.ProposalsURL, url.PathEscape(daoID), url.Values{"onchain": {daoID}}.Encode())

	var raw json.RawMessage
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, err
	}

	var list []rawProposal
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("daostar: decoding proposals: %w", err)
		}
	} else {
		var wrapped struct {
			Proposals []rawProposal `json:"proposals"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("daostar: decoding proposals: %w", err)
		}
		list = wrapped.Proposals
	}

	tasks := make([]task.Task, 0, len(list))
	for i, p := range list {
		if p.status() != "closed" {
			continue
		}
		tasks = append(tasks, toTask(daoID, i, p))
	}
	return tasks, nil
}

func toTask(daoID string, index int, p rawProposal) task.Task {
	id := string(p.ID)
	if id == "" {
		id = string(p.ProposalID)
	}
	if id == "" {
		id = fmt.Sprintf("%s-%d", daoID, index)
	}
	title := p.Title
	if title == "" {
		title = p.Name
	}
	desc := firstNonEmpty(p.Description, p.Summary, p.Body)

	return task.Normalize(task.Task{
		ID:          id,
		Title:       title,
		Description: truncate(desc, descriptionLimit),
		Category:    task.CategoryFromText(title, desc),
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
