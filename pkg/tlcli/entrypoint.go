// Command line interface for administering the teaching load system
package tlcli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlenv"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tllauncher"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver/tlserverclient"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlstore"
	"github.com/spf13/cobra"
)

func Entrypoint() *cobra.Command {
	app := &cobra.Command{
		Use:   "teachload",
		Short: "Teaching load distribution for a university department",
	}

	app.AddCommand(&cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a runtime environment directory",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}

			osutil.ExitIfError(envInit(dir))
		},
	})

	app.AddCommand(&cobra.Command{
		Use:   "launch",
		Short: "Check the environment, repair UI assets and start the server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			// the server's exit code is ours, so this cannot go through
			// ExitIfError
			code, err := launch(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				rootLogger)
			if err != nil {
				fmt.Fprintln(os.Stderr, "ERROR: "+err.Error())
			}

			os.Exit(code)
		},
	})

	listen := ""
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Run the HTTP API + web UI server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(serve(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				listen,
				rootLogger))
		},
	}
	serverCmd.Flags().StringVarP(&listen, "listen", "", listen, "Listen address override, e.g. 127.0.0.1:8501")
	app.AddCommand(serverCmd)

	serverUrl := ""
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(status(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				serverUrl,
				rootLogger))
		},
	}
	statusCmd.Flags().StringVarP(&serverUrl, "server", "", serverUrl, "Server base URL (default: from environment config)")
	app.AddCommand(statusCmd)

	app.AddCommand(instanceEntrypoint())
	app.AddCommand(solveEntrypoint())
	app.AddCommand(resultEntrypoint())
	app.AddCommand(timetableEntrypoint())
	app.AddCommand(reportEntrypoint())
	app.AddCommand(compareEntrypoint())
	app.AddCommand(watchEntrypoint())

	return app
}

func envInit(dir string) error {
	env, err := tlenv.Resolve(dir)
	if err != nil {
		return err
	}

	if err := env.Init(); err != nil {
		return err
	}

	fmt.Println("initialized: " + env.Dir())

	return nil
}

func launch(ctx context.Context, logger *log.Logger) (int, error) {
	env, err := tlenv.Resolve("")
	if err != nil {
		return 1, err
	}

	return tllauncher.Run(ctx, env, tllauncher.Options{}, logger)
}

func serve(ctx context.Context, listenOverride string, logger *log.Logger) error {
	env, err := tlenv.Resolve("")
	if err != nil {
		return err
	}

	return tlserver.Server(ctx, env, listenOverride, logger)
}

func status(ctx context.Context, serverUrl string, logger *log.Logger) error {
	if serverUrl == "" {
		_, conf, err := loadEnvConfig()
		if err != nil {
			return err
		}

		serverUrl = "http://" + conf.Listen
	}

	health, err := tlserverclient.New(serverUrl, logger).Health(ctx)
	if err != nil {
		return err
	}

	fmt.Printf(
		"%s: %s, %d instance(s), %d result(s)\n",
		serverUrl,
		health.Status,
		health.Instances,
		health.Results)

	return nil
}

// environment + strictly parsed config, for commands that need settings but
// not the database
func loadEnvConfig() (*tlenv.Env, *tlenv.Config, error) {
	env, err := tlenv.Resolve("")
	if err != nil {
		return nil, nil, err
	}

	if err := env.Check(); err != nil {
		return nil, nil, err
	}

	conf, err := env.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	return env, conf, nil
}

// direct database access, for commands that work without a running server.
// caller closes the store.
func openStore() (*tlenv.Env, *tlstore.Store, error) {
	env, err := tlenv.Resolve("")
	if err != nil {
		return nil, nil, err
	}

	if err := env.Check(); err != nil {
		return nil, nil, err
	}

	store, err := tlstore.Open(env.DatabasePath())
	if err != nil {
		return nil, nil, err
	}

	return env, store, nil
}
