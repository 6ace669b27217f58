package shipdeskcli

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/securecookie"

	"github.com/phillip-england/shipdesk/internal/clientapp"
	"github.com/phillip-england/shipdesk/internal/config"
	"github.com/phillip-england/shipdesk/internal/envutil"
	"github.com/phillip-england/shipdesk/internal/logger"
)

// Version is set at build time with -ldflags "-X .../shipdeskcli.Version=...".
var Version = "dev"

var ErrUsage = errors.New("usage")

func Execute(args []string) error {
	return execute(args, os.Stdout)
}

func execute(args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError()
	}

	switch args[0] {
	case "setup":
		return runSetup(args[1:], out)
	case "run":
		return runCommand(args[1:])
	case "version":
		fmt.Fprintf(out, "shipdesk %s\n", Version)
		return nil
	case "help", "-h", "--help":
		PrintUsage(out)
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: shipdesk <setup|run|version> [...]", ErrUsage)
}

func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: shipdesk setup [--api-base-url http://localhost:8080] [--env-file .env] [--force]")
	fmt.Fprintln(w, "       shipdesk run")
	fmt.Fprintln(w, "       shipdesk version")
}

func runSetup(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	fs.SetOutput(out)
	apiBaseURL := fs.String("api-base-url", "http://localhost:8080", "logistics backend base URL")
	addr := fs.String("addr", ":3000", "address the web client listens on")
	envPath := fs.String("env-file", ".env", "path to .env file")
	force := fs.Bool("force", false, "overwrite existing env file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usageError()
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	base := strings.TrimRight(strings.TrimSpace(*apiBaseURL), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("--api-base-url must start with http:// or https://, got %q", *apiBaseURL)
	}

	key, err := newCSRFKey()
	if err != nil {
		return err
	}
	values := map[string]string{
		"APP_ENV":      "production",
		"API_BASE_URL": base,
		"CLIENT_ADDR":  *addr,
		"CSRF_KEY":     key,
		"LOG_LEVEL":    "info",
	}

	if err := envutil.WriteDotEnv(*envPath, values, *force); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", *envPath)
	return nil
}

// newCSRFKey returns 32 random bytes, hex encoded the way config.FromViper reads them.
func newCSRFKey() (string, error) {
	key := securecookie.GenerateRandomKey(config.CSRFKeyLen)
	if key == nil {
		return "", errors.New("generate CSRF key: system randomness unavailable")
	}
	return hex.EncodeToString(key), nil
}

func runCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: run takes no arguments", ErrUsage)
	}

	if err := envutil.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := clientapp.Run(ctx, clientapp.ConfigFrom(cfg), log.Zerolog()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("client stopped")
	return nil
}
