package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"scholarship-workers/internal/lead"
)

var (
	redisAddr     string
	redisPassword string
	redisDB       int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect captured leads",
}

var leadsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List leads waiting in the intake list, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runLeadsPending,
}

func init() {
	f := leadsCmd.PersistentFlags()
	f.StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address of the lead intake")
	f.StringVar(&redisPassword, "redis-password", "", "Redis password")
	f.IntVar(&redisDB, "redis-db", 0, "Redis database")

	leadsCmd.AddCommand(leadsPendingCmd)
}

func runLeadsPending(cmd *cobra.Command, args []string) error {
	client := redis.NewClient(&redis.Options{Addr: redisAddr, Password: redisPassword, DB: redisDB})
	defer client.Close()

	pending, err := lead.NewRedisIntake(client, 0).Pending(cmd.Context())
	if err != nil {
		return fmt.Errorf("read intake %s: %w", redisAddr, err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, pending)
	}
	for _, l := range pending {
		fmt.Fprintf(out, "%s  %-24s %-12s %s\n", l.CreatedAt, l.Name, l.Phone, l.ID)
	}
	fmt.Fprintf(out, "%d pending leads\n", len(pending))
	return nil
}
