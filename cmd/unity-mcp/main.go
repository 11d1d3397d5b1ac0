package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lydakis/unity-mcp/internal/config"
	"github.com/lydakis/unity-mcp/internal/gateway"
	"github.com/lydakis/unity-mcp/internal/hostsim"
	"github.com/lydakis/unity-mcp/internal/logx"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "__hostsim" {
		cfg, err := loadConfig(os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "unity-mcp hostsim: %v\n", err)
			os.Exit(1)
		}
		if err := hostsim.Run(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "unity-mcp hostsim: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "unity-mcp: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := gateway.New(cfg).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "unity-mcp: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("unity-mcp", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path (default: XDG config dir)")
	port := fs.Int("port", 0, "MCP gateway port (management server uses port+1)")
	hostAddr := fs.String("host-addr", "", "Unity bridge address (host:port)")
	listenAddr := fs.String("listen-addr", "", "host simulator listen address")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if *port != 0 {
		cfg.GatewayPort = *port
	}
	if *hostAddr != "" {
		cfg.HostAddr = *hostAddr
	}
	if *listenAddr != "" {
		cfg.HostListenAddr = *listenAddr
	}
	if *debug {
		cfg.Debug = true
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logx.SetDebug(cfg.Debug)
	return cfg, nil
}
