// Package profile provides optional runtime profiling for exprx.
//
// Profiling is implemented with [github.com/pkg/profile] and compiled in only
// when building with the "pprof" tag:
//
//	go build -tags pprof -o exprx .
//
// Without the tag every [Config.Start] returns a no-op and [Modes] is empty.
//
// # Modes
//
// With the tag, [Modes] lists: allocs, block, clock, cpu, goroutine, heap,
// mem, mutex, thread, trace.
//
//	s := profile.Make(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/exprx"),
//	).Start()
//	defer s.Stop()
//
// Profiles are written to the configured directory named after the mode
// (cpu.pprof, mem.pprof, ...). Inspect them with go tool pprof:
//
//	go tool pprof -http=: /tmp/exprx/cpu.pprof
package profile
