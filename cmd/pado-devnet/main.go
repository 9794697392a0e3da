// The pado-devnet command runs a local simulator of the node registry and
// data registry processes, exposing the AO unit endpoints the SDK speaks.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/padolabs/pado-go-sdk/cmd/flags"
	"github.com/padolabs/pado-go-sdk/devnet"
)

var flagListenAddr = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on",
}

func main() {
	app := &cli.App{
		Name:  "pado-devnet",
		Usage: "local marketplace process simulator",
		Flags: append([]cli.Flag{flagListenAddr}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx, "pado-devnet")

			srv := devnet.New(&devnet.Config{
				ListenAddr:               cCtx.String(flagListenAddr.Name),
				NodeRegistryProcessID:    cCtx.String(flags.NodeRegistryFlag.Name),
				DataRegistryProcessID:    cCtx.String(flags.DataRegistryFlag.Name),
				Log:                      logger,
				GracefulShutdownDuration: 30 * time.Second,
				ReadTimeout:              60 * time.Second,
				WriteTimeout:             30 * time.Second,
			})

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			srv.RunInBackground()
			<-exit

			srv.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
