// Command ripplecodec converts ledger transactions between their JSON form
// and the canonical binary form used for hashing and signing.
package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/anyswap/ripple-binary-codec/addresscodec"
	"github.com/anyswap/ripple-binary-codec/cmd/utils"
	"github.com/anyswap/ripple-binary-codec/log"
	"github.com/anyswap/ripple-binary-codec/serialize"
)

var (
	clientIdentifier = "ripplecodec"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""

	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the ripple binary codec command line interface")
)

var (
	txFileFlag = &cli.StringFlag{
		Name:  "file",
		Usage: "read the transaction JSON from this file instead of the argument",
	}
	forSigningFlag = &cli.BoolFlag{
		Name:  "sign",
		Usage: "serialize only the signing fields",
	}
)

func initApp() {
	app.Action = serializeTx
	app.HideVersion = true
	app.Commands = []*cli.Command{
		utils.VersionCommand,
		encodeAccountCommand,
		decodeAccountCommand,
	}
	app.Flags = append([]cli.Flag{
		txFileFlag,
		forSigningFlag,
	}, utils.CommonLogFlags...)
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func serializeTx(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	txJSON, err := readTxArg(ctx)
	if err != nil {
		return err
	}
	forSigning := ctx.Bool(forSigningFlag.Name)
	encoded, err := serialize.SerializeTx(txJSON, forSigning)
	if err != nil {
		return err
	}
	log.Info("serialize success", "bytes", len(encoded), "forSigning", forSigning)
	fmt.Println(strings.ToUpper(hex.EncodeToString(encoded)))
	return nil
}

func readTxArg(ctx *cli.Context) (string, error) {
	if file := ctx.String(txFileFlag.Name); file != "" {
		content, err := ioutil.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %v failed: %v", file, err)
		}
		return string(content), nil
	}
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("want a transaction JSON argument or --file")
	}
	return ctx.Args().Get(0), nil
}

var encodeAccountCommand = &cli.Command{
	Action:    encodeAccount,
	Name:      "encodeaccount",
	Usage:     "encode 20 hex bytes into a checksummed address",
	ArgsUsage: "<accountIDHex>",
	Flags:     utils.CommonLogFlags,
}

func encodeAccount(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("want an account id hex argument")
	}
	accountID, err := hex.DecodeString(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	address, err := addresscodec.EncodeAccountID(accountID)
	if err != nil {
		return err
	}
	fmt.Println(address)
	return nil
}

var decodeAccountCommand = &cli.Command{
	Action:    decodeAccount,
	Name:      "decodeaccount",
	Usage:     "decode a checksummed address into its 20 raw bytes",
	ArgsUsage: "<address>",
	Flags:     utils.CommonLogFlags,
}

func decodeAccount(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("want an address argument")
	}
	accountID, err := addresscodec.DecodeAccountID(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	fmt.Println(strings.ToUpper(hex.EncodeToString(accountID)))
	return nil
}
