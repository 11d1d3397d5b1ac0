package hostsim

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lydakis/unity-mcp/internal/config"
	"github.com/lydakis/unity-mcp/internal/host"
	"github.com/lydakis/unity-mcp/internal/logx"
)

// Run starts the in-process editor host. Called when argv[1] ==
// "__hostsim". It serves the bridge protocol until SIGINT/SIGTERM.
func Run(cfg *config.Config) error {
	editor := NewEditor()
	loop := host.NewMainLoop(64)

	registry := host.NewRegistry(
		host.WithMainLoop(loop),
		host.WithExecTimeout(cfg.ExecTimeoutDuration()),
	)
	RegisterTools(registry, editor)

	srv := host.NewServer(cfg.HostListenAddr, registry)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting host server: %w", err)
	}
	defer srv.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Run(ctx, cfg.TickIntervalDuration())
	}()

	logx.Infof("host simulator listening on %s (%d tools)", srv.Addr(), registry.Len())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logx.Infof("host simulator shutting down")
	cancel()
	wg.Wait()
	return nil
}
