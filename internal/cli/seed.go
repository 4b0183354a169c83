package cli

import (
	"fmt"
	"math/rand"
	"time"

	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/leads/synthetic"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/db"
	"leadscout_backend/platform/logger"

	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	var (
		count int
		seed  int64
		force bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply migrations and insert a synthetic lead dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cfg.Env, cmd.ErrOrStderr())
			ctx := cmd.Context()

			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.RunMigrations(ctx, pool); err != nil {
				return err
			}

			campaigns, err := synthetic.LoadCampaigns(cfg.SeedCampaignsFile)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			log.Info("generating synthetic dataset", "count", count, "seed", seed)

			ds := synthetic.NewGenerator(rand.NewSource(seed), time.Now()).Dataset(count, campaigns)
			result, err := synthetic.Seed(ctx, repository.New(pool), ds, force, log)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVar(&count, "count", 200, "Number of leads to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 picks one from the clock")
	cmd.Flags().BoolVar(&force, "force", false, "Insert leads even when the table is not empty")
	return cmd
}
