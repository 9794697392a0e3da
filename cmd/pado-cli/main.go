// The pado-cli command drives the marketplace SDK from the command line:
// node registration and listing against the node registry process, and data
// encryption, upload and registration against the data registry process.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/padolabs/pado-go-sdk/cmd/flags"
	"github.com/padolabs/pado-go-sdk/cryptoutils"
	"github.com/padolabs/pado-go-sdk/dataregistry"
	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/padolabs/pado-go-sdk/noderegistry"
	"github.com/padolabs/pado-go-sdk/storage"
	"github.com/padolabs/pado-go-sdk/wallet"
)

var flagNodeName = &cli.StringFlag{
	Name:     "name",
	Required: true,
	Usage:    "node name",
}
var flagNodeDesc = &cli.StringFlag{
	Name:  "desc",
	Usage: "node description",
}
var flagPublicKey = &cli.StringFlag{
	Name:     "public-key",
	Required: true,
	Usage:    "hex-encoded secp256k1 public key to publish",
}
var flagInput = &cli.StringFlag{
	Name:     "input",
	Required: true,
	Usage:    "path to the plaintext data file",
}
var flagDataName = &cli.StringFlag{
	Name:     "data-name",
	Required: true,
	Usage:    "dataset name for the data tag",
}
var flagPrice = &cli.StringFlag{
	Name:     "price",
	Required: true,
	Usage:    "price amount for one use of the dataset",
}
var flagSymbol = &cli.StringFlag{
	Name:  "symbol",
	Usage: "payment token symbol",
}
var flagThreshold = &cli.IntFlag{
	Name:  "t",
	Value: 2,
	Usage: "threshold of nodes required to recover the data key",
}
var flagShares = &cli.IntFlag{
	Name:  "n",
	Value: 3,
	Usage: "total number of nodes holding key shares",
}
var flagStorageType = &cli.StringFlag{
	Name:  "storage-type",
	Value: string(interfaces.StorageTypeArweave),
	Usage: "storage route: arweave or arseeding",
}
var flagArweaveGateway = &cli.StringFlag{
	Name:  "arweave-gateway",
	Value: storage.DefaultArweaveGateway,
	Usage: "Arweave gateway URL",
}
var flagArseedingGateway = &cli.StringFlag{
	Name:  "arseeding-gateway",
	Value: storage.DefaultArseedingGateway,
	Usage: "Arseeding gateway URL",
}
var flagDataStatus = &cli.StringFlag{
	Name:  "status",
	Value: dataregistry.DefaultDataStatus,
	Usage: "data status filter",
}
var flagDataID = &cli.StringFlag{
	Name:     "id",
	Required: true,
	Usage:    "data identifier",
}

func main() {
	app := &cli.App{
		Name:  "pado-cli",
		Usage: "PADO data marketplace client",
		Flags: append([]cli.Flag{flags.WalletFlag}, flags.CommonFlags...),
		Commands: []*cli.Command{
			{
				Name:  "node",
				Usage: "node registry operations",
				Subcommands: []*cli.Command{
					{
						Name:   "register",
						Usage:  "register a compute node",
						Flags:  []cli.Flag{flagNodeName, flagPublicKey, flagNodeDesc},
						Action: runNodeRegister,
					},
					{
						Name:   "update",
						Usage:  "update a registered node's key or description",
						Flags:  []cli.Flag{flagNodeName, flagPublicKey, flagNodeDesc},
						Action: runNodeUpdate,
					},
					{
						Name:   "list",
						Usage:  "list registered nodes",
						Action: runNodeList,
					},
				},
			},
			{
				Name:  "data",
				Usage: "data registry operations",
				Subcommands: []*cli.Command{
					{
						Name:  "submit",
						Usage: "encrypt, upload and register a dataset",
						Flags: []cli.Flag{
							flagInput, flagDataName, flagPrice, flagSymbol,
							flagThreshold, flagShares, flagStorageType,
							flagArweaveGateway, flagArseedingGateway,
						},
						Action: runDataSubmit,
					},
					{
						Name:   "list",
						Usage:  "list registered data records",
						Flags:  []cli.Flag{flagDataStatus},
						Action: runDataList,
					},
					{
						Name:   "get",
						Usage:  "fetch one data record by ID",
						Flags:  []cli.Flag{flagDataID},
						Action: runDataGet,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func nodeClient(cCtx *cli.Context) *noderegistry.Client {
	logger := flags.SetupLogger(cCtx, "pado-cli")
	return noderegistry.NewClient(&noderegistry.Config{
		ProcessID: cCtx.String(flags.NodeRegistryFlag.Name),
		Messenger: flags.NewMessenger(cCtx, logger),
		Log:       logger,
	})
}

func walletSigner(cCtx *cli.Context) (*wallet.ArweaveSigner, []byte, error) {
	path := cCtx.String(flags.WalletFlag.Name)
	if path == "" {
		return nil, nil, fmt.Errorf("--wallet is required for this command")
	}

	jwk, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	signer, err := wallet.NewArweaveSigner(jwk)
	if err != nil {
		return nil, nil, err
	}
	return signer, jwk, nil
}

func runNodeRegister(cCtx *cli.Context) error {
	signer, _, err := walletSigner(cCtx)
	if err != nil {
		return err
	}

	resp, err := nodeClient(cCtx).Register(cCtx.Context,
		cCtx.String(flagNodeName.Name),
		cCtx.String(flagPublicKey.Name),
		cCtx.String(flagNodeDesc.Name),
		signer)
	if err != nil {
		return err
	}

	fmt.Println(string(resp))
	return nil
}

func runNodeUpdate(cCtx *cli.Context) error {
	signer, _, err := walletSigner(cCtx)
	if err != nil {
		return err
	}

	resp, err := nodeClient(cCtx).Update(cCtx.Context,
		cCtx.String(flagNodeName.Name),
		cCtx.String(flagPublicKey.Name),
		cCtx.String(flagNodeDesc.Name),
		signer)
	if err != nil {
		return err
	}

	fmt.Println(string(resp))
	return nil
}

func runNodeList(cCtx *cli.Context) error {
	listing, err := nodeClient(cCtx).Nodes(cCtx.Context)
	if err != nil {
		return err
	}

	fmt.Println(string(listing))
	return nil
}

func runDataSubmit(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx, "pado-cli")

	_, jwk, err := walletSigner(cCtx)
	if err != nil {
		return err
	}

	plaintext, err := os.ReadFile(cCtx.String(flagInput.Name))
	if err != nil {
		return err
	}

	messenger := flags.NewMessenger(cCtx, logger)
	discovery := noderegistry.NewClient(&noderegistry.Config{
		ProcessID: cCtx.String(flags.NodeRegistryFlag.Name),
		Messenger: messenger,
		Log:       logger,
	})

	client := dataregistry.NewClient(&dataregistry.Config{
		ProcessID:        cCtx.String(flags.DataRegistryFlag.Name),
		Messenger:        messenger,
		Discovery:        discovery,
		Encryptor:        cryptoutils.NewThresholdEncryptor(),
		ArweaveBackend:   storage.NewArweaveBackend(cCtx.String(flagArweaveGateway.Name), logger),
		ArseedingBackend: storage.NewArseedingBackend(cCtx.String(flagArseedingGateway.Name), logger),
		SignerFor:        wallet.SignerFromJWK,
		Log:              logger,
	})

	schema := interfaces.EncryptionSchema{
		T: cCtx.Int(flagThreshold.Name),
		N: cCtx.Int(flagShares.Name),
	}

	policy, publicKeys, err := client.PrepareRegistry(cCtx.Context, schema)
	if err != nil {
		return err
	}

	encrypted, err := client.EncryptData(plaintext, policy, publicKeys)
	if err != nil {
		return err
	}

	var uploadParam *interfaces.UploadParam
	if cCtx.String(flagStorageType.Name) == string(interfaces.StorageTypeArseeding) {
		uploadParam = &interfaces.UploadParam{
			StorageType: interfaces.StorageTypeArseeding,
			Symbol:      cCtx.String(flagSymbol.Name),
		}
	}

	dataID, err := client.SubmitData(cCtx.Context, encrypted,
		interfaces.DataTag{Name: cCtx.String(flagDataName.Name)},
		interfaces.PriceInfo{Amount: cCtx.String(flagPrice.Name), Symbol: cCtx.String(flagSymbol.Name)},
		jwk, uploadParam)
	if err != nil {
		return err
	}

	fmt.Println(dataID)
	return nil
}

func dataClient(cCtx *cli.Context) *dataregistry.Client {
	logger := flags.SetupLogger(cCtx, "pado-cli")
	return dataregistry.NewClient(&dataregistry.Config{
		ProcessID: cCtx.String(flags.DataRegistryFlag.Name),
		Messenger: flags.NewMessenger(cCtx, logger),
		Log:       logger,
	})
}

func runDataList(cCtx *cli.Context) error {
	listing, err := dataClient(cCtx).AllData(cCtx.Context, cCtx.String(flagDataStatus.Name))
	if err != nil {
		return err
	}

	fmt.Println(string(listing))
	return nil
}

func runDataGet(cCtx *cli.Context) error {
	record, err := dataClient(cCtx).GetDataByID(cCtx.Context, cCtx.String(flagDataID.Name))
	if err != nil {
		return err
	}

	fmt.Println(string(record))
	return nil
}
