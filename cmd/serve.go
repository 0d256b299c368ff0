package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the personalization API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		e, err := openEnv(cmd, envOptions{Registerer: reg, ForceLogs: true})
		if err != nil {
			return err
		}
		defer e.Close()

		addr := e.cfg.HTTPAddr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		if e.cfg.LogMode == "prod" || e.cfg.LogMode == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := httpapi.NewRouter(httpapi.RouterConfig{
			Service:     e.svc,
			Logger:      e.log,
			CORSOrigins: e.cfg.CORSOrigins,
			Gatherer:    reg,
		})
		return httpapi.Serve(ctx, addr, router, e.log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LEARNPATH_HTTP_ADDR)")
}
