// Package keylock serializes work per key, such as per user.
//
// Two implementations are provided: Memory for a single process and Redis for
// several instances sharing one Redis server. Both return a Release func that
// must be called once the critical section is over:
//
//	release, err := locker.Lock(ctx, "user:42")
//	if err != nil {
//		return err
//	}
//	defer release(context.WithoutCancel(ctx))
//
// Bound the wait with a context deadline; a lock that is not acquired before
// the deadline yields ErrLockTimeout.
package keylock
