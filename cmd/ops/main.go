// Command ops is the operator CLI for one-off maintenance tasks that
// run against the same database as the API: wallet backfill after
// enabling chain mirroring, and a manual reconciliation sweep.
package main

import (
	"context"
	"fmt"
	"os"

	"tokenvine/config"
	"tokenvine/internal/adapter/chain"
	pgStorage "tokenvine/internal/adapter/storage/postgres"
	"tokenvine/internal/core/ports"
	"tokenvine/internal/service"
	"tokenvine/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ops",
	Short: "Operational tasks for the token ledger service",
}

var backfillWalletsCmd = &cobra.Command{
	Use:   "backfill-wallets",
	Short: "Create wallets for accounts that do not have one yet",
	Long: `Scans for accounts without a wallet and provisions one for each.
Run once after enabling chain mirroring on an existing deployment;
safe to re-run, accounts that already have a wallet are skipped.`,
	RunE: runBackfillWallets,
}

var chainSyncCmd = &cobra.Command{
	Use:   "chain-sync",
	Short: "Run one reconciliation sweep over pending ledger entries",
	RunE:  runChainSync,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(backfillWalletsCmd)
	rootCmd.AddCommand(chainSyncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and opens the database pool shared by all
// subcommands. The caller must invoke the returned cleanup func.
func bootstrap() (*config.Config, zerolog.Logger, pgStorage.Pool, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	pool, err := pgStorage.NewPool(context.Background(), cfg.Database, log)
	if err != nil {
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return cfg, log, pool, pool.Close, nil
}

func runBackfillWallets(cmd *cobra.Command, _ []string) error {
	cfg, log, pool, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	encSvc, err := service.NewAESEncryptionService(cfg.Wallet.EncryptionKey)
	if err != nil {
		return fmt.Errorf("initializing encryption service: %w", err)
	}

	accountRepo := pgStorage.NewAccountRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	walletSvc := service.NewWalletService(
		walletRepo,
		accountRepo,
		chain.NewLocalKeyVault(),
		encSvc,
		cfg.Chain.Enabled(),
		cfg.Chain.ContractAddress,
		cfg.Chain.ExplorerBaseURL,
		log,
	)

	ctx := cmd.Context()
	accounts, err := accountRepo.ListWithoutWallet(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts without wallets: %w", err)
	}
	if len(accounts) == 0 {
		fmt.Println("all accounts already have wallets")
		return nil
	}

	created := 0
	for _, acct := range accounts {
		address, err := walletSvc.EnsureWallet(ctx, acct.Kind, acct.ID)
		if err != nil {
			log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("wallet backfill failed for account")
			continue
		}
		created++
		fmt.Printf("%s  %s\n", acct.ID, address)
	}

	fmt.Printf("created %d of %d missing wallets\n", created, len(accounts))
	return nil
}

func runChainSync(cmd *cobra.Command, _ []string) error {
	cfg, log, pool, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	if !cfg.Chain.Enabled() {
		return fmt.Errorf("chain mirroring is not configured (relayer_url, relayer_secret, contract_address)")
	}

	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	var chainClient ports.ChainClient = chain.NewRelayerClient(cfg.Chain, log)
	reconciler := service.NewReconcilerService(ledgerRepo, walletRepo, chainClient, true, log)

	report, err := reconciler.ProcessPendingBatch(cmd.Context())
	if err != nil {
		return fmt.Errorf("running sync batch: %w", err)
	}

	fmt.Printf("synced=%d failed=%d skipped=%d\n", report.Synced, report.Failed, report.Skipped)
	return nil
}
