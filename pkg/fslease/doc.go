// Package fslease provides a high-level library API for advisory file lease
// locks.
//
// A lease lock is a sidecar file next to a target resource (the target's
// extension replaced by ".lock") whose sole content is the decimal
// 100-nanosecond tick count of its release instant, measured from
// 0001-01-01 00:00:00 UTC. The format is byte-compatible with lock files
// written by the original .NET implementation, so mixed deployments
// cooperate on the same files.
//
// Locks are advisory: they bind only participants that use this protocol.
// There is no kernel enforcement, no cross-machine consensus beyond a shared
// filesystem, and no fairness between waiters.
//
// # Usage
//
//	lease, err := fslease.New("/data/reports.db")
//	if err != nil {
//	    return err
//	}
//	defer lease.Close()
//
//	ok, err := lease.TryAcquireOrTimeout(5*time.Minute, 30*time.Second)
//	if err != nil {
//	    return err // invalid arguments
//	}
//	if !ok {
//	    return errors.New("resource busy")
//	}
//	// ... work ...
//
// Close releases the claim: it deletes the lock file only when the on-disk
// release instant still matches the last value this handle wrote, so a lock
// that expired and was re-acquired by another process is left alone.
//
// # Concurrency
//
// A Lease's public methods are not safe for concurrent use by multiple
// goroutines; serialize them in the caller. Two Lease values bound to the
// same path are independent participants and compete through the lock file,
// exactly like two processes would.
package fslease
