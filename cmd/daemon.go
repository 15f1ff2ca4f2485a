package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"github.com/taskbell/taskbell/cmd/common"
	tcommon "github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/api"
	"github.com/taskbell/taskbell/internal/daemon"
	"github.com/taskbell/taskbell/internal/notifier"
	"github.com/taskbell/taskbell/internal/scheduler"
	"github.com/taskbell/taskbell/internal/server"
	"github.com/taskbell/taskbell/pkg/belllib"
	"github.com/taskbell/taskbell/pkg/credman"
	"github.com/taskbell/taskbell/pkg/logger"
)

func runDaemon(ctx *cli.Context) error {
	if err := RunDaemon(currentBuildArgs.Version); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "run", err)
	}
	return nil
}

// RunDaemon starts the reminder daemon and blocks until it is
// interrupted.
func RunDaemon(version string) error {
	l := log.Default()
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	flog, err := logger.NewFileLogger(filepath.Join(dataDir, "taskbell.log"))
	if err != nil {
		return err
	}
	lg := logger.NewMultiLogger(logger.NewStandardLogger(l), flog)
	defer lg.Close()

	blob, err := belllib.NewSQLiteStore(filepath.Join(dataDir, "tasks.db"))
	if err != nil {
		return err
	}
	m, err := belllib.InitManager(blob, l)
	if err != nil {
		return err
	}

	hooks, err := notifier.NewEngine(l, filepath.Join(dataDir, "hooks"))
	if err != nil {
		return err
	}
	notify := notifier.NewMulti(l,
		notifier.NewBell(os.Stdout),
		notifier.NewDesktop(l),
		hooks,
	)

	secret, err := credman.NewSecretManager(dataDir).Resolve()
	if err != nil {
		lg.Warning("rpc endpoint disabled, no auth secret: %s", err.Error())
		secret = ""
	}
	rpc := server.NewRPCServer(&server.RPCConfig{
		Secret:  secret,
		Port:    tcommon.DefaultPort + 1,
		Version: version,
	}, m, l)
	serv := server.NewServer(l, rpc, tcommon.DefaultPort)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(sigCtx, l, time.Minute, func(t belllib.Task) {
		firedAt := time.Now().Unix()
		notify.Notify(t)
		rpc.Notifier().BroadcastReminder(t, firedAt)
		serv.Pool().Broadcast(t.ID, server.MakeResult(tcommon.UPDATE_REMINDER, &tcommon.ReminderResponse{
			Task:    &t,
			FiredAt: firedAt,
		}))
	})
	if err := m.SetReconciler(sched); err != nil {
		return err
	}

	s, err := api.NewApi(l, m, version)
	if err != nil {
		return err
	}
	s.RegisterHandlers(serv)
	defer s.Close()

	// The runner holds a claim port so a second daemon instance bails
	// out instead of fighting over the socket.
	runner := daemon.New(&daemon.Config{
		ServiceName: daemon.DefaultServiceName,
		DisplayName: daemon.DefaultDisplayName,
		Port:        tcommon.DefaultPort + 2,
		DataDir:     dataDir,
	}, nil)
	go func() {
		err := runner.Start(sigCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			lg.Error("another daemon instance appears to be running: %s", err.Error())
			stop()
		}
	}()

	lg.Info("taskbell daemon %s started (data dir: %s, hooks: %d)",
		version, dataDir, len(hooks.Hooks()))
	err = serv.Start(sigCtx)
	lg.Info("taskbell daemon stopped")
	return err
}

func resolveDataDir() (string, error) {
	dir := os.Getenv(tcommon.DataDirEnv)
	if dir == "" {
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cfg, "taskbell")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
