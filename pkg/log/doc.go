// Package log provides named, leveled loggers on top of the standard library
// logger.
//
// Every component asks for its own logger and every line carries the level
// and the component name:
//
//	l := log.ForService("storage")
//	l.Infof("imported %d entries", n)
//	// 2024/05/01 10:00:00.000000 INFO [storage>] imported 512 entries
//
// Debug lines are dropped unless debug is enabled globally (the --debug flag
// calls SetGlobalDebug) or for one component with EnableDebugFor. Predicates
// built by the search package are logged at debug level under "search".
//
// Tests can capture output with SetOutput(&buf). All functions are safe for
// concurrent use.
//
// The package name collides with the standard library "log"; alias one of
// them when both are needed.
package log
