// Package download provides the orchestration engine that fetches a
// resolved collection to local storage.
//
// # Pipeline
//
// Every item flows through the same stages:
//
//  1. Check: a filesystem metadata read decides whether the local file
//     already matches the expected size (skip) or not (fetch).
//  2. Fetch: the item streams to a temp file and is renamed into place
//     atomically; any transport failure becomes a *FetchError.
//  3. Report: exactly one outcome per item is recorded, regardless of
//     what happened to the others.
//
// # Manager
//
// The Manager coordinates the whole run:
//
//	manager := download.NewManager(settings, sess, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, "somefan"); err != nil {
//	    log.Fatal(err)
//	}
//
//	outcomes, err := manager.Run(ctx)
//	if err != nil {
//	    log.Fatal(err) // only pre-run conditions, e.g. bad worker count
//	}
//	fmt.Println(manager.Reporter().Summary())
//
// # Concurrency
//
// Run fans items out across settings.Workers goroutines (1 to 32); at
// most that many transfers are in flight at any instant. A worker
// count of 1 is a supported diagnostic mode that processes items
// strictly sequentially.
//
// # Failure Isolation
//
// Workers never return errors. Every failure is converted to a Failed
// outcome at the item boundary and recorded with the Reporter, so one
// bad item can never cancel or block the rest of the batch. Run's own
// error is reserved for conditions detected before any work starts.
package download
