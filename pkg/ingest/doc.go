// Package ingest moves raw reaction records through the engine and into storage.
//
// A Processor decodes one input, consults the result cache, runs the engine in
// normalize or validate mode and records metrics and a trace span:
//
//	p := ingest.NewProcessor(engine, ingest.WithCache(c), ingest.WithMetrics(m))
//	res, err := p.Process(ctx, data, codec.FormatYAML, ingest.ModeNormalize)
//	if errors.Is(err, ingest.ErrDecode) { ... }
//	if res.Accepted() { ... }
//
// An Importer fans a Source (a directory, a list of files or an S3 prefix) out over a
// bounded worker pool. Records whose report has no ERROR finding are accepted and
// stored under their reaction_id, or a fresh "ord-<32 hex>" id when they have none.
// Rejected records are dropped unless ImportConfig.StoreRejected is set.
//
// A Watcher imports files as they settle in an inbox directory and a Scheduler runs
// imports on cron schedules.
package ingest
