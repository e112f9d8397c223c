// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mvm/log"
	"github.com/vechain/mvm/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "mvm",
		Usage:     "Offline tooling for the Move VM storage backend",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			verbosityFlag,
			jsonLogsFlag,
			metricsFlag,
		},
		Before: func(ctx *cli.Context) error {
			initLogger(ctx)
			if ctx.Bool(metricsFlag.Name) {
				metrics.InitializePrometheusMetrics()
			}
			return nil
		},
		After: func(ctx *cli.Context) error {
			if ctx.Bool(metricsFlag.Name) {
				return metrics.WriteText(os.Stderr)
			}
			return nil
		},
		Commands: []cli.Command{
			{
				Name:      "check-script",
				Usage:     "run the admission check on a compiled script",
				ArgsUsage: "FILE",
				Action:    checkScriptAction,
			},
			{
				Name:  "bundle",
				Usage: "pack or unpack module bundles",
				Subcommands: []cli.Command{
					{
						Name:      "pack",
						Usage:     "encode module files into one bundle",
						ArgsUsage: "MODULE...",
						Flags:     []cli.Flag{outFlag},
						Action:    bundlePackAction,
					},
					{
						Name:      "unpack",
						Usage:     "split a bundle into module files",
						ArgsUsage: "FILE",
						Flags:     []cli.Flag{outFlag},
						Action:    bundleUnpackAction,
					},
				},
			},
			{
				Name:      "inspect",
				Usage:     "list the modules and resources of an account",
				ArgsUsage: "ADDRESS",
				Flags:     []cli.Flag{dataDirFlag, cacheFlag},
				Action:    inspectAction,
			},
			{
				Name:  "ledger",
				Usage: "read and edit the native balance ledger",
				Subcommands: []cli.Command{
					{
						Name:      "show",
						Usage:     "print total and cheque of an account",
						ArgsUsage: "ADDRESS",
						Flags:     []cli.Flag{dataDirFlag, cacheFlag},
						Action:    ledgerShowAction,
					},
					{
						Name:      "mint",
						Usage:     "credit an account",
						ArgsUsage: "ADDRESS AMOUNT",
						Flags:     []cli.Flag{dataDirFlag, cacheFlag},
						Action:    ledgerMintAction,
					},
					{
						Name:      "cheque",
						Usage:     "set the transferable part of an account's balance",
						ArgsUsage: "ADDRESS AMOUNT",
						Flags:     []cli.Flag{dataDirFlag, cacheFlag},
						Action:    ledgerChequeAction,
					},
				},
			},
			{
				Name:  "genesis",
				Usage: "genesis configuration tools",
				Subcommands: []cli.Command{
					{
						Name:   "check",
						Usage:  "decode every bundle listed in a genesis config",
						Flags:  []cli.Flag{genesisConfigFlag},
						Action: genesisCheckAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
