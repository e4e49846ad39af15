/*
Package workers runs the backend's blocking filesystem operations off the
caller's goroutine.

# Overview

Scanning a directory, building a tree, and reading image headers are all
synchronous and I/O-bound. The command layer never runs them on the
goroutine serving a UI request; it submits them to a Pool and waits:

	pool := workers.NewPool(workers.ForIO(32))

	tree, err := workers.Do(ctx, pool, "list_dir_tree", func() (media.TreeEntry, error) {
	    return media.ListDirTree(root, depth)
	})

Do recovers panics in the task and reports them as WORKER_ERROR. When ctx
ends first the caller gets CANCELED while the task finishes on its own;
filesystem reads have no cancellation points.

# Sizing

Pool sizes come from GOMAXPROCS, which Go sets from container CPU limits:

	workers.ForCPU(8)   // 1 per CPU, at most 8
	workers.ForIO(16)   // 2 per CPU, at most 16
	workers.ForMixed(0) // 1.5 per CPU, no cap

The WORKERS environment variable pins the count (still capped by limit).
*/
package workers
