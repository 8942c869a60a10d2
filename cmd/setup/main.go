package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"

	"github.com/betbot/polytrade/clob/client"
	"github.com/betbot/polytrade/clob/signing"
	"github.com/betbot/polytrade/clob/types"
	"github.com/betbot/polytrade/pkg/config"
	"github.com/betbot/polytrade/pkg/logger"
	"github.com/betbot/polytrade/pkg/secretstore"
)

// setup bootstraps a wallet for trading: derives the signing key, obtains
// user API credentials from the exchange, persists them, and optionally
// deploys the proxy safe and submits allowances through the relayer.
func main() {
	var (
		cfgPath        = flag.String("config", getenv("POLYTRADE_CONFIG", ""), "config yaml path")
		derivationPath = flag.String("derivation-path", "m/44'/60'/0'/0/0", "HD derivation path when MNEMONIC is set")
		nonce          = flag.Int64("nonce", 0, "auth nonce for credential issuance")
		secretDB       = flag.String("badger", getenv("POLYTRADE_SECRET_DB", ""), "optional badger secrets db path")
		secretKey      = flag.String("secret-key", getenv("POLYTRADE_SECRET_KEY", ""), "badger encryption key (32 bytes, base64 or hex)")
		deploySafe     = flag.Bool("deploy-safe", false, "deploy the proxy safe through the relayer")
		approve        = flag.Bool("approve", false, "submit collateral allowance for the exchange through the relayer")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, OutputFile: cfg.Log.File}); err != nil {
		fatal(err)
	}

	privHex, err := resolvePrivateKey(*derivationPath)
	if err != nil {
		fatal(err)
	}
	priv, err := signing.PrivateKeyFromHex(privHex)
	if err != nil {
		fatal(fmt.Errorf("invalid private key: %w", err))
	}
	address := signing.AddressFromPrivateKey(priv)
	fmt.Println("signer address:", address.Hex())

	c := client.NewClient(
		cfg.Host,
		types.Chain(cfg.ChainID),
		priv,
		types.SignatureType(cfg.SignatureType),
		cfg.Funder,
		client.WithRPCURL(cfg.RPCURL),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	creds, err := c.CreateOrDeriveAPIKey(ctx, *nonce)
	if err != nil {
		fatal(fmt.Errorf("obtain api credentials: %w", err))
	}
	fmt.Println("api key:", creds.Key)

	if err := client.SaveCredentials(cfg.CredentialsFile, creds); err != nil {
		fatal(err)
	}
	fmt.Println("credentials written to", cfg.CredentialsFile)

	if *secretDB != "" {
		if err := persistSecrets(*secretDB, *secretKey, privHex, creds); err != nil {
			fatal(err)
		}
		fmt.Println("secrets stored in", *secretDB)
	}

	if *deploySafe || *approve {
		if err := runRelayerSteps(ctx, cfg, *deploySafe, *approve); err != nil {
			fatal(err)
		}
	}
}

// resolvePrivateKey prefers PRIVATE_KEY; when absent it derives a key from
// MNEMONIC with the given path.
func resolvePrivateKey(derivationPath string) (string, error) {
	if hex := strings.TrimSpace(config.PrivateKeyHex()); hex != "" {
		return hex, nil
	}
	mnemonic := strings.TrimSpace(config.Mnemonic())
	if mnemonic == "" {
		return "", fmt.Errorf("set PRIVATE_KEY or MNEMONIC")
	}

	w, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return "", fmt.Errorf("invalid mnemonic: %w", err)
	}
	path, err := hdwallet.ParseDerivationPath(derivationPath)
	if err != nil {
		return "", fmt.Errorf("invalid derivation path: %w", err)
	}
	acct, err := w.Derive(path, false)
	if err != nil {
		return "", fmt.Errorf("derive failed: %w", err)
	}
	return w.PrivateKeyHex(acct)
}

func persistSecrets(dbPath, keyRaw, privHex string, creds *types.ApiKeyCreds) error {
	keyBytes, err := secretstore.ParseKey(keyRaw)
	if err != nil {
		return err
	}
	ss, err := secretstore.Open(secretstore.OpenOptions{
		Path:          dbPath,
		EncryptionKey: keyBytes,
	})
	if err != nil {
		return err
	}
	defer ss.Close()

	if err := ss.SavePrivateKey(privHex); err != nil {
		return err
	}
	return ss.SaveAPICredentials(creds)
}

func runRelayerSteps(ctx context.Context, cfg *config.Config, deploySafe, approve bool) error {
	builder := &types.BuilderCreds{
		Key:        cfg.Builder.APIKey,
		Secret:     cfg.Builder.Secret,
		Passphrase: cfg.Builder.Passphrase,
	}
	relayer, err := client.NewRelayerClient(cfg.RelayerHost, builder)
	if err != nil {
		return err
	}
	contracts, err := client.GetContractConfig(types.Chain(cfg.ChainID))
	if err != nil {
		return err
	}
	if cfg.Funder == "" {
		return fmt.Errorf("relayer steps need a funder address (FUNDER_ADDRESS)")
	}

	if deploySafe {
		tx, err := relayer.DeploySafe(ctx, cfg.Funder)
		if err != nil {
			return fmt.Errorf("deploy safe: %w", err)
		}
		fmt.Println("safe deploy tx:", tx.TransactionHash)
	}
	if approve {
		// Unlimited allowance, uint256 max.
		const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"
		tx, err := relayer.ApproveCollateral(ctx, cfg.Funder, contracts.Collateral, contracts.Exchange, maxUint256)
		if err != nil {
			return fmt.Errorf("approve collateral: %w", err)
		}
		fmt.Println("collateral approval tx:", tx.TransactionHash)
	}
	return nil
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
