// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
// Run blocks until its context is cancelled and then calls Shutdown with the
// configured deadline, so binaries usually pair it with signal.NotifyContext:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Liveness and Readiness provide probe handlers; Readiness runs its checks
// with the request context and answers 503 on the first failure.
package httpserver
