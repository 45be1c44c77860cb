package cli

import (
	"os/signal"
	"syscall"

	"github.com/nathfavour/blubot/pkg/config"
	"github.com/nathfavour/blubot/pkg/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from serve.addr)")
	_ = viper.BindPFlag(config.KeyServeAddr, serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser chat page",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s := web.NewServer(a.responder, a.pacer(), a.labels(), a.recorder())
		return s.ListenAndServe(ctx, a.settings.ServeAddr)
	},
}
