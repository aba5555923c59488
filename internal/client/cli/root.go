package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/softasistence/internal/client/config"
)

// NewRootCmd builds the attendctl command tree.
func (a *App) NewRootCmd() *cobra.Command {
	var (
		configPath string
		server     string
		grpcAddr   string
		transport  string
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:           "attendctl",
		Short:         "Operator tool for the softasistence auth service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("server") {
				cfg.ServerURL = server
			}
			if flags.Changed("grpc-addr") {
				cfg.GRPCAddr = grpcAddr
			}
			if flags.Changed("transport") {
				cfg.Transport = transport
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.config = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to JSON config file")
	pf.StringVar(&server, "server", "", "base URL of the REST API")
	pf.StringVar(&grpcAddr, "grpc-addr", "", "host:port of the gRPC endpoint")
	pf.StringVar(&transport, "transport", "", `"http" or "grpc"`)
	pf.DurationVar(&timeout, "timeout", 0, "per-request timeout")

	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(a.loginCmd(), a.meCmd(), a.smokeCmd(), a.useraddCmd())
	return root
}

// Execute runs attendctl with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
