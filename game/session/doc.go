// Package session keeps Boxworld game sessions in memory.
//
// Each session owns its own engine, so players never share a board. Sessions
// live only as long as the process; nothing is written to disk.
//
// Session IDs are four lowercase hex characters drawn from crypto/rand and are
// matched case-insensitively. Callers may also pick their own ID.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", levels.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Manager is safe for concurrent use. It guards only its own map; callers
// that drive a session's engine from several goroutines must serialise those
// calls themselves.
package session
