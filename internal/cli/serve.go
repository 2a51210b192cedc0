package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/lostfound/internal/api"
	"github.com/idilsaglam/lostfound/internal/log"
	"github.com/idilsaglam/lostfound/internal/ui"
)

const shutdownTimeout = 10 * time.Second

func doServe(args []string, opt Options) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(ui.Stderr)
	addr := fs.String("addr", opt.Config.Addr, "listen address")
	token := fs.String("token", opt.Config.Token, "bearer token required for writes (empty leaves them open)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rs, ok := loadRoutes(opt)
	if !ok {
		return 1
	}
	st := openStore(opt)
	if *token == "" {
		log.Warn("no token configured, write endpoints are open")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.New(st, rs, *token).Handler(opt.Config.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening on %s (data=%s)", *addr, st.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	ui.OK("server stopped")
	return 0
}
