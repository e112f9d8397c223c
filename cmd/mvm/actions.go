// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/bytecode"
	"github.com/vechain/mvm/genesis"
	"github.com/vechain/mvm/warehouse"
)

func checkScriptAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	code, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	signers, err := bytecode.VerifyScript(code)
	if err != nil {
		return err
	}
	fmt.Printf("admitted, %d signer(s)\n", signers)
	return nil
}

func bundlePackAction(ctx *cli.Context) error {
	out := ctx.String(outFlag.Name)
	if out == "" {
		return errors.New("--out is required")
	}
	if ctx.NArg() == 0 {
		return errors.New("no module files")
	}
	modules := make([][]byte, 0, ctx.NArg())
	for _, path := range ctx.Args() {
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		modules = append(modules, code)
	}
	data := bytecode.EncodeBundle(modules)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	logger.Info("bundle packed", "modules", len(modules), "bytes", len(data), "out", out)
	return nil
}

func bundleUnpackAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	dir := ctx.String(outFlag.Name)
	if dir == "" {
		return errors.New("--out is required")
	}
	data, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	modules, err := bytecode.DecodeBundle(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, code := range modules {
		path := filepath.Join(dir, fmt.Sprintf("module_%03d.mv", i))
		if err := os.WriteFile(path, code, 0o644); err != nil {
			return err
		}
	}
	logger.Info("bundle unpacked", "modules", len(modules), "dir", dir)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	addr, err := parseAddress(ctx.Args().First())
	if err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	acc, err := warehouse.New(stateBucket.NewGetPutter(db)).Account(addr)
	if err != nil {
		return err
	}
	fmt.Printf("account %v\n", addr)
	if acc.IsEmpty() {
		fmt.Println("  (empty)")
		return nil
	}
	for _, name := range acc.Modules() {
		fmt.Printf("  module   %-32s %6d bytes\n", name, len(acc.Module(name)))
	}
	for _, tag := range acc.Resources() {
		fmt.Printf("  resource %s\n", tag)
	}
	return nil
}

func withLedger(ctx *cli.Context, nargs int, fn func(l *bridge.Ledger) error) error {
	if err := requireArgs(ctx, nargs); err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(bridge.NewLedger(ledgerBucket.NewGetPutter(db)))
}

func ledgerShowAction(ctx *cli.Context) error {
	return withLedger(ctx, 1, func(l *bridge.Ledger) error {
		addr, err := parseAddress(ctx.Args().Get(0))
		if err != nil {
			return err
		}
		b, err := l.Balance(addr)
		if err != nil {
			return err
		}
		fmt.Printf("account %v\n  total  %v\n  cheque %v\n", addr, b.Total.Dec(), b.Cheque.Dec())
		return nil
	})
}

func ledgerMintAction(ctx *cli.Context) error {
	return withLedger(ctx, 2, func(l *bridge.Ledger) error {
		addr, err := parseAddress(ctx.Args().Get(0))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.Args().Get(1))
		if err != nil {
			return err
		}
		if err := l.Mint(addr, amount); err != nil {
			return err
		}
		logger.Info("minted", "addr", addr, "amount", amount.Dec())
		return nil
	})
}

func ledgerChequeAction(ctx *cli.Context) error {
	return withLedger(ctx, 2, func(l *bridge.Ledger) error {
		addr, err := parseAddress(ctx.Args().Get(0))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.Args().Get(1))
		if err != nil {
			return err
		}
		if err := l.WriteCheque(addr, amount); err != nil {
			return err
		}
		logger.Info("cheque written", "addr", addr, "amount", amount.Dec())
		return nil
	})
}

func genesisCheckAction(ctx *cli.Context) error {
	path := ctx.String(genesisConfigFlag.Name)
	if path == "" {
		return errors.New("--config is required")
	}
	cfg, err := genesis.LoadConfig(path)
	if err != nil {
		return err
	}
	counts, err := cfg.Check()
	if err != nil {
		return err
	}
	for i, b := range cfg.Bundles {
		fmt.Printf("bundle %d  %-10s %3d module(s)  %s\n", i, b.Address.ShortString(), counts[i], b.Path)
	}
	return nil
}
