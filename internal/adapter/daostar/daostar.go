package daostar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
)

var (
	_ portregistry.MembershipChecker = (*Client)(nil)
	_ portregistry.RosterSource      = (*Client)(nil)
	_ portregistry.ProposalSource    = (*Client)(nil)
)

const (
	DefaultMembersURL   = "https://membersuri.daostar.org"
	DefaultProposalsURL = "https://proposalsuri.daostar.org"

	// MaxMembers caps roster pagination.
	MaxMembers = 200

	descriptionLimit = 200
)

// Client reads DAOIP-2/DAOIP-4 member and proposal URIs.
type Client struct {
	HTTP         *http.Client
	MembersURL   string
	ProposalsURL string
}

func New(membersURL, proposalsURL string, timeout time.Duration) *Client {
	if membersURL == "" {
		membersURL = DefaultMembersURL
	}
	if proposalsURL == "" {
		proposalsURL = DefaultProposalsURL
	}
	return &Client{
		HTTP:         &http.Client{Timeout: timeout},
		MembersURL:   strings.TrimRight(membersURL, "/"),
		ProposalsURL: strings.TrimRight(proposalsURL, "/"),
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("daostar: GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daostar: unexpected status %d for %s", resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("daostar: decoding %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) IsMember(ctx context.Context, daoID, address string) (bool, error) {
	q := url.Values{"voter": {address}, "onchain": {daoID}}
	u := fmt.Sprintf("%s/is_member/%s.eth?%s", c.MembersURL, url.PathEscape(daoID), q.Encode())

	var body struct {
		IsMember bool `json:"is_member"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return false, err
	}
	return body.IsMember, nil
}
