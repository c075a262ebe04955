// Bootstraps the runtime environment and starts the web application: checks
// that the environment directory exists, repairs missing or tampered UI
// assets, spawns the server process and waits until it answers health probes.
package tllauncher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/function61/gokit/log/logex"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlenv"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver/tlserverclient"
	"github.com/jpillora/backoff"
)

const readyTimeout = 30 * time.Second

// Process is the started server from the launcher's point of view.
type Process interface {
	Wait() error
}

// Options lets tests swap out the side-effecting steps. Zero value uses the
// real implementations.
type Options struct {
	Install     func() error
	StartServer func(ctx context.Context) (Process, error)
	WaitReady   func(ctx context.Context, baseUrl string) error
}

// Run performs the bootstrap sequence and blocks until the server process
// exits. Exit code is 1 for bootstrap failures, otherwise the server's own.
func Run(ctx context.Context, env *tlenv.Env, opts Options, logger *log.Logger) (int, error) {
	logl := logex.Levels(logger)

	if err := env.Check(); err != nil {
		return 1, err
	}

	conf, err := env.LoadConfig()
	if err != nil {
		return 1, err
	}

	missing, err := env.MissingAssets()
	if err != nil {
		return 1, err
	}

	if len(missing) > 0 {
		logl.Info.Printf("installing %d UI asset(s)", len(missing))

		install := opts.Install
		if install == nil {
			install = env.InstallAssets
		}

		if err := install(); err != nil {
			return 1, fmt.Errorf("install assets: %w", err)
		}
	}

	start := opts.StartServer
	if start == nil {
		start = func(ctx context.Context) (Process, error) {
			return startServerProcess(ctx, env)
		}
	}

	server, err := start(ctx)
	if err != nil {
		return 1, fmt.Errorf("start server: %w", err)
	}

	waitReady := opts.WaitReady
	if waitReady == nil {
		waitReady = func(ctx context.Context, baseUrl string) error {
			return waitUntilHealthy(ctx, baseUrl, logger)
		}
	}

	if err := waitReady(ctx, "http://"+conf.Listen); err != nil {
		logl.Error.Printf("readiness probe: %v", err) // not fatal
	} else {
		logl.Info.Printf("ready at http://%s", conf.Listen)
	}

	return exitCode(server.Wait())
}

// exitCode maps the server's Wait() error to the code the launcher should
// exit with, so `teachload launch` behaves like running the server directly.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), fmt.Errorf("server exited: %w", err)
	}

	return 1, fmt.Errorf("server: %w", err)
}

func startServerProcess(ctx context.Context, env *tlenv.Env) (Process, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, self, "server")
	cmd.Env = append(os.Environ(), tlenv.EnvVarName+"="+env.Dir())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}

func waitUntilHealthy(ctx context.Context, baseUrl string, logger *log.Logger) error {
	client := tlserverclient.New(baseUrl, logger)

	retry := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: false,
	}

	deadline := time.Now().Add(readyTimeout)

	for {
		attemptCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := client.Health(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("not ready after %s: %w", readyTimeout, err)
		}

		time.Sleep(retry.Duration())
	}
}
