package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/betbot/polytrade/clob/client"
	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
	"github.com/betbot/polytrade/pkg/config"
	"github.com/betbot/polytrade/pkg/logger"
)

// balance prints the wallet's resolved collateral balance.
func main() {
	cfgPath := flag.String("config", getenv("POLYTRADE_CONFIG", ""), "config yaml path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, OutputFile: cfg.Log.File}); err != nil {
		fatal(err)
	}

	priv, err := signing.PrivateKeyFromHex(config.PrivateKeyHex())
	if err != nil {
		fatal(fmt.Errorf("PRIVATE_KEY: %w", err))
	}

	opts := []client.Option{client.WithRPCURL(cfg.RPCURL)}
	if creds, err := client.LoadCredentials(cfg.CredentialsFile); err == nil {
		opts = append(opts, client.WithAPICredentials(creds))
	}
	if cfg.Builder.APIKey != "" {
		opts = append(opts, client.WithBuilderCredentials(&types.BuilderCreds{
			Key:        cfg.Builder.APIKey,
			Secret:     cfg.Builder.Secret,
			Passphrase: cfg.Builder.Passphrase,
		}))
	}

	c := client.NewClient(
		cfg.Host,
		types.Chain(cfg.ChainID),
		priv,
		types.SignatureType(cfg.SignatureType),
		cfg.Funder,
		opts...,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	balance := c.GetCollateralBalance(ctx)
	fmt.Printf("wallet %s collateral balance: %.6f\n", c.Funder(), balance)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
