// Package async runs ordcheck's long-lived background work: the inbox watcher and
// the periodic pool-stat reporter started by serve.
//
// Every goroutine started here recovers panics, logs failures through logrus and
// exposes a Task handle so shutdown can wait for it:
//
//	watch := async.Go(ctx, logger, "inbox watcher", watcher.Run)
//	stats := async.Every(ctx, logger, "db stats", 15*time.Second, report)
//	// ...
//	cancel()
//	err := async.Wait(shutdownCtx, watch, stats)
package async
