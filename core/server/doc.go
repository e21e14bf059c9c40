// Package server runs the HTTP API with graceful shutdown.
//
//	srv, err := server.New(cfg.Server, server.WithLogger(log))
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	err = g.Wait()
package server
