// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/log"
	"github.com/vechain/mvm/lvldb"
	"github.com/vechain/mvm/move"
)

const (
	stateBucket  = kv.Bucket("s")
	ledgerBucket = kv.Bucket("l")
)

func initLogger(ctx *cli.Context) {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(int(ctx.GlobalUint64(verbosityFlag.Name))))
	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, level, ctx.GlobalBool(jsonLogsFlag.Name))))
}

// newLogHandler writes logfmt to terminals and JSON everywhere else.
func newLogHandler(w io.Writer, level *slog.LevelVar, forceJSON bool) slog.Handler {
	if f, ok := w.(*os.File); ok && !forceJSON && isatty.IsTerminal(f.Fd()) {
		return log.LogfmtHandlerWithLevel(w, level)
	}
	return log.JSONHandlerWithLevel(w, level)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".mvm")
	}
	return ".mvm"
}

func openDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return nil, errors.New("--data-dir is required")
	}
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	logger.Debug("database opened", "dir", dir)
	return db, nil
}

func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return errors.Errorf("expected %d arguments, got %d", n, ctx.NArg())
	}
	return nil
}

func parseAddress(s string) (move.Address, error) {
	addr, err := move.ParseAddress(s)
	if err != nil {
		return move.Address{}, errors.Wrapf(err, "address %q", s)
	}
	return addr, nil
}

// parseAmount accepts decimal or 0x-prefixed hex.
func parseAmount(s string) (*uint256.Int, error) {
	var (
		v   *uint256.Int
		err error
	)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "amount %q", s)
	}
	return v, nil
}
