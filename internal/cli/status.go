package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agprobe/agprobe/internal/discovery"
	"github.com/agprobe/agprobe/internal/langserver"
)

func newStatusCmd() *cobra.Command {
	var (
		apiKey  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch the signed-in user's status from the language server",
		Long: `Discover the running language server, then call its GetUserStatus RPC
with the given API key and print the account status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				return fmt.Errorf("--api-key is required")
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			d := discovery.New(cfg.Scan, logger)
			res, err := d.Discover(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info().
				Uint16("port", res.Port).
				Int32("pid", res.PID).
				Msg("language server discovered")

			client := langserver.New(cfg.Client.Timeout, logger)
			status, err := client.GetUserStatus(cmd.Context(), res.Port, res.Token, apiKey)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}

			printStatus(cmd, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key sent in the request metadata (required)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full response as JSON")

	return cmd
}

func printStatus(cmd *cobra.Command, status *langserver.StatusResponse) {
	us := status.UserStatus
	if us == nil {
		cmd.Println("no user status in response")
		return
	}

	cmd.Printf("name:  %s\n", us.Name)
	cmd.Printf("email: %s\n", us.Email)

	if ps := us.PlanStatus; ps != nil {
		if ps.PlanInfo != nil {
			cmd.Printf("plan:  %s\n", ps.PlanInfo.PlanName)
		}
		cmd.Printf("prompt credits: %d\n", ps.AvailablePromptCredits)
		cmd.Printf("flow credits:   %d\n", ps.AvailableFlowCredits)
	}

	if mc := us.CascadeModelConfigData; mc != nil && len(mc.ClientModelConfigs) > 0 {
		cmd.Println("models:")
		for _, m := range mc.ClientModelConfigs {
			label := m.Label
			if m.IsRecommended {
				label += " (recommended)"
			}
			cmd.Printf("  - %s\n", label)
		}
	}
}
