package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alanyang/dao-janny/internal/adapter/ethereum"
	"github.com/alanyang/dao-janny/internal/adapter/memory"
	"github.com/alanyang/dao-janny/internal/config"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
	domainfee "github.com/alanyang/dao-janny/internal/domain/fee"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	"github.com/alanyang/dao-janny/internal/service/eligibility"
	feesvc "github.com/alanyang/dao-janny/internal/service/fee"
	rolesvc "github.com/alanyang/dao-janny/internal/service/role"
	watchersvc "github.com/alanyang/dao-janny/internal/service/watcher"
)

func parseChainArg(s string) (chain.ID, error) {
	id, err := chain.ParseID(s)
	if err != nil {
		return 0, err
	}
	if _, err := chain.Lookup(id); err != nil {
		return 0, err
	}
	return id, nil
}

func quoteCmd(v *viper.Viper) *cobra.Command {
	var taskID string
	var members []string
	cmd := &cobra.Command{
		Use:   "quote <chain-id>",
		Short: "Price a draw: randomness fee, gas and the buffered total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := chain.ParseID(args[0])
			if err != nil {
				return err
			}
			return withChain(v, func(cfg config.Config, c *ethereum.Client) error {
				svc := feesvc.NewService(c, memory.NewCache[chain.ID, domainfee.OracleFee](cfg.FeeCacheTTL))
				q := svc.Quote(cmd.Context(), id)
				if taskID != "" && len(members) > 0 {
					q = svc.QuoteAssignment(cmd.Context(), id, taskID, members)
				}
				if v.GetBool(keyJSON) {
					return printJSON(cmd.OutOrStdout(), q)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(cmd.OutOrStdout())
				tw.AppendHeader(table.Row{"Component", "Wei"})
				tw.AppendRow(table.Row{"randomness fee", q.RandomnessFee.String()})
				tw.AppendRow(table.Row{fmt.Sprintf("gas (%d units)", q.GasUnits), q.GasFee.String()})
				tw.AppendFooter(table.Row{fmt.Sprintf("total (+%d%%)", domainfee.BufferPercent-100), q.Total.String()})
				tw.Render()
				if q.Fallback {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: oracle unavailable, randomness fee is the fallback value")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "task id to estimate gas for")
	cmd.Flags().StringSliceVar(&members, "members", nil, "eligible member addresses")
	return cmd
}

func roleCmd(v *viper.Viper) *cobra.Command {
	var names []string
	cmd := &cobra.Command{
		Use:   "role <chain-id> <address>",
		Short: "Show which contract roles an address holds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseChainArg(args[0])
			if err != nil {
				return err
			}
			for _, n := range names {
				if _, ok := chain.RoleFor(n); !ok {
					return fmt.Errorf("unknown role %q, must be one of: %s", n, strings.Join(chain.RoleNames(), ", "))
				}
			}
			return withChain(v, func(_ config.Config, c *ethereum.Client) error {
				svc := rolesvc.NewService(c)
				ctx := cmd.Context()
				admin := svc.IsAdmin(ctx, args[1], id)
				roles := svc.Roles(ctx, args[1], id, names...)
				if v.GetBool(keyJSON) {
					return printJSON(cmd.OutOrStdout(), map[string]any{"address": args[1], "admin": admin, "roles": roles})
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(cmd.OutOrStdout())
				tw.AppendHeader(table.Row{"Role", "Held"})
				tw.AppendRow(table.Row{"admin", admin})
				for _, n := range chain.RoleNames() {
					if held, ok := roles[n]; ok {
						tw.AppendRow(table.Row{n, held})
					}
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&names, "roles", nil, "role names to check (default all)")
	return cmd
}

func adminRoleCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "admin-role <chain-id>",
		Short: "Print the contract's ADMIN_ROLE id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseChainArg(args[0])
			if err != nil {
				return err
			}
			return withChain(v, func(_ config.Config, c *ethereum.Client) error {
				role, err := rolesvc.NewService(c).AdminRole(cmd.Context(), id)
				if err != nil {
					return err
				}
				if v.GetBool(keyJSON) {
					return printJSON(cmd.OutOrStdout(), map[string]any{"chain_id": id, "admin_role": role.Hex()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), role.Hex())
				return nil
			})
		},
	}
}

func eligibleCmd(v *viper.Viper) *cobra.Command {
	var rosterPath, daoID, category string
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List the members eligible for a task category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var roster []member.Member
			switch {
			case rosterPath != "":
				r, err := loadRoster(rosterPath)
				if err != nil {
					return err
				}
				roster = r
			case daoID != "":
				client, err := registryClient(v)
				if err != nil {
					return err
				}
				r, err := client.Members(cmd.Context(), daoID)
				if err != nil {
					return err
				}
				roster = r
			default:
				return fmt.Errorf("one of --roster or --dao is required")
			}

			pool := eligibility.Filter(member.NormalizeAll(roster), task.Category(category))
			if v.GetBool(keyJSON) {
				return printJSON(cmd.OutOrStdout(), pool)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Address", "Name", "Domain"})
			for _, m := range pool {
				tw.AppendRow(table.Row{m.Address, m.DisplayName, m.Domain})
			}
			tw.AppendFooter(table.Row{fmt.Sprintf("%d of %d", len(pool), len(roster)), "", ""})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "roster file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&daoID, "dao", "", "fetch the roster from the registry")
	cmd.Flags().StringVar(&category, "category", "", "task category")
	return cmd
}

// loadRoster reads a member list. YAML goes through JSON so the member
// struct tags apply to both formats.
func loadRoster(path string) ([]member.Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse roster %s: %w", path, err)
		}
		if data, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("parse roster %s: %w", path, err)
		}
	}
	var roster []member.Member
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	return roster, nil
}

func proposalsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "proposals <dao-id>",
		Short: "List closed proposals as assignable tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := registryClient(v)
			if err != nil {
				return err
			}
			tasks, err := client.Proposals(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if v.GetBool(keyJSON) {
				return printJSON(cmd.OutOrStdout(), tasks)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"ID", "Title", "Category"})
			for _, t := range tasks {
				tw.AppendRow(table.Row{t.ID, t.Title, t.Category})
			}
			tw.Render()
			return nil
		},
	}
}

func watchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <chain-id>",
		Short: "Stream TaskAssigned events until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseChainArg(args[0])
			if err != nil {
				return err
			}
			return withChain(v, func(_ config.Config, c *ethereum.Client) error {
				out := cmd.OutOrStdout()
				stop, err := watchersvc.NewService(c).Watch(cmd.Context(), id, func(ev event.TaskAssigned) {
					if v.GetBool(keyJSON) {
						_ = json.NewEncoder(out).Encode(ev)
						return
					}
					fmt.Fprintf(out, "block %d  task %s  -> %s  (%s)\n", ev.BlockNumber, ev.TaskID, ev.AssignedTo, ev.TxHash)
				})
				if err != nil {
					return err
				}
				defer stop()
				<-cmd.Context().Done()
				return nil
			})
		},
	}
}
