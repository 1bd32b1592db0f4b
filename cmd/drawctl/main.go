package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alanyang/dao-janny/internal/adapter/daostar"
	"github.com/alanyang/dao-janny/internal/adapter/ethereum"
	"github.com/alanyang/dao-janny/internal/config"
)

const keyJSON = "json"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "drawctl",
		Short:         "Inspect fees, roles and rosters for randomized task assignment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	root.PersistentFlags().Bool(keyJSON, false, "output JSON")
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	root.PersistentFlags().String(config.KeyConfigFile, "", "YAML config file")
	_ = v.BindPFlag(keyJSON, root.PersistentFlags().Lookup(keyJSON))
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = v.BindPFlag(config.KeyConfigFile, root.PersistentFlags().Lookup(config.KeyConfigFile))

	root.AddCommand(
		quoteCmd(v),
		roleCmd(v),
		adminRoleCmd(v),
		eligibleCmd(v),
		proposalsCmd(v),
		watchCmd(v),
	)
	return root
}

// withChain resolves config and hands fn a chain client that is closed afterwards.
func withChain(v *viper.Viper, fn func(cfg config.Config, c *ethereum.Client) error) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	c := ethereum.New(ethereum.Config{
		RPCURLs:      cfg.RPCURLs,
		SignerURL:    cfg.SignerRPCURL,
		PollInterval: cfg.WatchPoll,
	})
	defer c.Close()
	return fn(cfg, c)
}

func registryClient(v *viper.Viper) (*daostar.Client, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	return daostar.New(cfg.MembershipURL, cfg.ProposalsURL, cfg.HTTPTimeout), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
