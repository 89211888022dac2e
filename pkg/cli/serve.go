package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/valtteripyyhtia/book-library/pkg/cli/config"
	server "github.com/valtteripyyhtia/book-library/pkg/controller/http"
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/repository"
	"github.com/valtteripyyhtia/book-library/pkg/usecase"
	"github.com/valtteripyyhtia/book-library/pkg/utils/logging"
	"github.com/valtteripyyhtia/book-library/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var (
		addr         string
		authCfg      config.Auth
		sentryCfg    config.Sentry
		firestoreCfg config.Firestore
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("BOOKLIB_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
		},
		authCfg.Flags(),
		sentryCfg.Flags(),
		firestoreCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
				"auth", authCfg,
				"sentry", sentryCfg,
				"firestore", firestoreCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			tokenSvc, err := authCfg.Configure()
			if err != nil {
				return err
			}

			var repo interfaces.Repository
			if firestoreCfg.IsConfigured() {
				firestore, err := firestoreCfg.Configure(ctx)
				if err != nil {
					return err
				}
				defer safe.Close(ctx, firestore)
				repo = firestore
			} else {
				logging.From(ctx).Info("Firestore is not configured, using in-memory repository")
				repo = repository.NewMemory()
			}

			uc := usecase.New(usecase.WithRepository(repo))

			var serverOptions []server.Options
			if authCfg.TestLoginEnabled() {
				logging.From(ctx).Warn("⚠️  Test login is ENABLED: POST /login issues tokens without credentials",
					"recommendation", "Never enable this outside development or testing")
				serverOptions = append(serverOptions, server.WithTestLogin(true))
			}

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc, tokenSvc, serverOptions...),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
