/*
Package store is the persistence adapter over the Supabase REST API. The job
only ever deletes by date filter and inserts fresh rows; it never reads.
*/
package store

import (
	"fmt"

	supabase "github.com/supabase-community/supabase-go"

	"github.com/stacktracker/intelgen/internal/types"
)

const (
	briefsTable = "intelligence_briefs"
	vaultTable  = "vault_data"
)

// Client talks to the two record collections this job owns.
type Client struct {
	sb *supabase.Client
}

// NewClient creates a store client using the service role key.
func NewClient(url, serviceRoleKey string) (*Client, error) {
	sb, err := supabase.NewClient(url, serviceRoleKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Client{sb: sb}, nil
}

// DeleteBriefs removes every brief for the given date.
func (c *Client) DeleteBriefs(date string) error {
	_, _, err := c.sb.From(briefsTable).Delete("", "").Eq("date", date).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete briefs for %s: %w", date, err)
	}
	return nil
}

// InsertBrief inserts one brief row.
func (c *Client) InsertBrief(brief types.IntelligenceBrief) error {
	_, _, err := c.sb.From(briefsTable).Insert(brief, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert brief %q: %w", brief.Title, err)
	}
	return nil
}

// DeleteVaultRows removes every vault row for the given date and source.
func (c *Client) DeleteVaultRows(date, source string) error {
	_, _, err := c.sb.From(vaultTable).Delete("", "").Eq("date", date).Eq("source", source).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete vault rows for %s/%s: %w", date, source, err)
	}
	return nil
}

// InsertVaultRow inserts one metal's snapshot row.
func (c *Client) InsertVaultRow(row types.VaultSnapshot) error {
	_, _, err := c.sb.From(vaultTable).Insert(row, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert vault row for %s: %w", row.Metal, err)
	}
	return nil
}
