package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/agprobe/agprobe/internal/discovery"
)

func newDiscoverCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover the language server port and CSRF token",
		Long: `Run discovery only: locate the newest Antigravity.log, parse the HTTPS
port, and scan the running IDE processes for the CSRF token. Prints the
pair without calling the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			d := discovery.New(cfg.Scan, logger)
			res, err := d.Discover(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}

			cmd.Printf("log:   %s\n", res.LogPath)
			cmd.Printf("pid:   %d\n", res.PID)
			cmd.Printf("port:  %d\n", res.Port)
			cmd.Printf("token: %s\n", res.Token)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")

	return cmd
}
