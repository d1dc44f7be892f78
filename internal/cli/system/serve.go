package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/murojaah/internal/api"
	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/logger"
)

type ServeCmd struct {
	Addr string `help:"Address the HTTP API listens on." default:":8080" env:"MUROJAAH_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	secret, err := ctx.SessionBackend().Secret()
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}

	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultAPIAddr
	}

	srv := api.New(ctx.Store, secret,
		api.WithClock(ctx.Clock),
		api.WithDirectory(ctx.Directory()))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	go func() {
		<-stop
		logger.Info("Shutting down API")
		if err := srv.Shutdown(); err != nil {
			logger.Error("API shutdown failed", "error", err)
		}
	}()

	logger.Mirror(os.Stderr)
	fmt.Printf("murojaah API listening on %s\n", addr)
	return srv.Listen(addr)
}
