package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// Cache memoizes compiled programs. It is safe for concurrent use.
//
// Programs are keyed by the expression source together with the name, kind,
// and dynamic type of every attached binding, so two expressions share a
// program only when compiling either would yield the same program. Function
// implementations are not part of the key: a Cache must only be shared by
// expressions whose functions of the same name behave identically.
type Cache struct {
	programs sync.Map // key -> *state
	hits     atomic.Int64
	misses   atomic.Int64
	observe  func(ctx context.Context, hit bool)
}

// state tracks the one-time compilation of a program.
type state struct {
	once    sync.Once
	program *vm.Program
	err     error
}

// NewCache returns an empty program cache.
func NewCache() *Cache { return &Cache{} }

// OnLookup registers fn to be called after every lookup with whether the
// program was already cached. It must be called before c is shared.
func (c *Cache) OnLookup(fn func(ctx context.Context, hit bool)) *Cache {
	c.observe = fn

	return c
}

// Len returns the number of cached programs, including failed compilations.
func (c *Cache) Len() int {
	n := 0

	c.programs.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Reset discards all cached programs.
func (c *Cache) Reset() {
	c.programs.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *Cache) load(ctx context.Context, e *Expr) (*vm.Program, error) {
	key := cacheKey(e)

	value, hit := c.programs.LoadOrStore(key, new(state))
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	e.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit),
	)

	if c.observe != nil {
		c.observe(ctx, hit)
	}

	st, _ := value.(*state)

	// Compilation errors are cached too: the same key always fails the same
	// way.
	st.once.Do(func() {
		st.program, st.err = e.compile(ctx)
	})

	return st.program, st.err
}

// cacheKey hashes the source of e with its sorted bindings.
func cacheKey(e *Expr) string {
	var b strings.Builder

	b.WriteString(e.source)

	for name := range e.Names() {
		b.WriteByte(0)
		b.WriteString(name)
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(int(e.names[name])))

		if v, ok := e.Value(name); ok {
			fmt.Fprintf(&b, "%T", v)
		}
	}

	return strconv.FormatUint(xxh3.HashString(b.String()), 36)
}
