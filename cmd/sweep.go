package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wanderpost/wanderpost/internal/config"
)

func newSweepCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one batch pass over pending records and exit",
		Long: `Generates and emails a travel page proposal for every record
whose status is pending, without starting the HTTP server. Record status is
left untouched; approval happens through the links in the emails once the
server is running.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			service, err := newService(cfg)
			if err != nil {
				return err
			}

			return service.Sweep(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "wanderpost.yaml", "Path to optional YAML config file")

	return cmd
}
