package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/nstehr/vimy/vimy-combat/agent"
	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/config"
	"github.com/nstehr/vimy/vimy-combat/ipc"
)

const banner = `
██╗   ██╗██╗███╗   ███╗██╗   ██╗
██║   ██║██║████╗ ████║╚██╗ ██╔╝
██║   ██║██║██╔████╔██║ ╚████╔╝
╚██╗ ██╔╝██║██║╚██╔╝██║  ╚██╔╝
 ╚████╔╝ ██║██║ ╚═╝ ██║   ██║
  ╚═══╝  ╚═╝╚═╝     ╚═╝   ╚═╝

Tactical Space Combat Resolver`

func main() {
	socketPath := flag.String("socket", "/tmp/vimy-combat.sock", "unix socket to serve battle requests on")
	scenario := flag.String("scenario", "", "resolve this scenario file once and exit")
	debug := flag.Bool("debug", false, "log every move and shot")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *scenario != "" {
		if err := resolveFile(ctx, *scenario); err != nil {
			slog.Error("battle failed", "scenario", *scenario, "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("starting vimy-combat")

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(ctx, conn)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(ctx context.Context, conn net.Conn) {
	c := ipc.NewConnection(conn, nil)
	agent.New(c).Register()
	c.ReadLoop(ctx)
}

func resolveFile(ctx context.Context, path string) error {
	sc, err := config.Load(path)
	if err != nil {
		return err
	}
	opts, err := sc.Options()
	if err != nil {
		return err
	}
	b, err := battle.New(opts)
	if err != nil {
		return err
	}
	res, err := b.Run(ctx)
	fmt.Print(battle.FormatEvents(res.Events))
	fmt.Printf("\n%s after %d rounds, winners %v\n", res.Outcome, res.Rounds, res.Winners)
	for _, s := range res.Survivors() {
		fmt.Printf("  %-16s empire %-3d x%-3d hits %.1f\n", s.Name, s.Empire, s.Num, s.Hits)
	}
	return err
}
