// Package flags holds the CLI flags and setup helpers shared by the pado
// commands.
package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/padolabs/pado-go-sdk/ao"
	"github.com/padolabs/pado-go-sdk/common"
)

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var NodeRegistryFlag = &cli.StringFlag{
	Name:    "node-registry-process",
	Usage:   "node registry process ID",
	EnvVars: []string{"PADO_NODE_REGISTRY_PROCESS"},
}
var DataRegistryFlag = &cli.StringFlag{
	Name:    "data-registry-process",
	Usage:   "data registry process ID",
	EnvVars: []string{"PADO_DATA_REGISTRY_PROCESS"},
}
var MuURLFlag = &cli.StringFlag{
	Name:  "mu-url",
	Value: ao.DefaultMessengerURL,
	Usage: "messenger unit URL",
}
var CuURLFlag = &cli.StringFlag{
	Name:  "cu-url",
	Value: ao.DefaultComputeURL,
	Usage: "compute unit URL",
}
var WalletFlag = &cli.StringFlag{
	Name:    "wallet",
	Usage:   "path to the Arweave JWK wallet keyfile",
	EnvVars: []string{"PADO_WALLET"},
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	NodeRegistryFlag,
	DataRegistryFlag,
	MuURLFlag,
	CuURLFlag,
}

// SetupLogger creates the process logger from the logging flags.
func SetupLogger(cCtx *cli.Context, service string) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Service: service,
		Version: common.Version,
	})

	if cCtx.Bool(LogUidFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// NewMessenger creates a process messenger from the unit URL flags.
func NewMessenger(cCtx *cli.Context, log *slog.Logger) *ao.Messenger {
	return ao.NewMessenger(&ao.Config{
		MessengerURL: cCtx.String(MuURLFlag.Name),
		ComputeURL:   cCtx.String(CuURLFlag.Name),
		Log:          log,
	})
}
