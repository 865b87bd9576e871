package template

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
)

var person = map[string]any{"name": "Kar", "location": "foo-bar"}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data any
		want string
	}{
		{
			"substitution",
			"Hi, my name is <? $.name ?> and I live in <? $.location ?>",
			person,
			"Hi, my name is Kar and I live in foo-bar",
		},
		{"empty template", "", person, ""},
		{"no markers", "nothing to <see> here?", person, "nothing to <see> here?"},
		{"no markers nil context", "static", nil, "static"},
		{"blank body", "Hello, <? ?>", person, "Hello, "},
		{"blank body needs no context", "<?\t?>!", nil, "!"},
		{"null", "<? nil ?>|<? null ?>", nil, "null|null"},
		{"bool", "<? 1 < 2 ?>", nil, "true"},
		{"integer", "<? 6 * 7 ?>", nil, "42"},
		{"float", "<? 1 / 4 ?>", nil, "0.25"},
		{"string unquoted", `<? "a" + "b" ?>`, nil, "ab"},
		{"array", "<? [1, 'x', nil] ?>", nil, `[1,"x",null]`},
		{"object", "<? $ ?>", map[string]any{"b": 2, "a": "<&>"}, `{"a":"<&>","b":2}`},
		{"scalar context", "n=<? $ + 1 ?>", 41, "n=42"},
		{
			"identical markers",
			"<? $.name ?>/<? $.name ?>/<?$.name?>",
			person,
			"Kar/Kar/Kar",
		},
		{
			"inserted text not rescanned",
			"<? $.raw ?>",
			map[string]any{"raw": "<? 1 + 1 ?>"},
			"<? 1 + 1 ?>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(t.Context(), tt.tmpl, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Failure(t *testing.T) {
	tmpl := "ok <? $.name ?> bad <? $.name + ?> never"

	got, err := Resolve(t.Context(), tmpl, person)

	require.Error(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, lang.ErrTemplateResolve)
	assert.ErrorIs(t, err, lang.ErrExprCompile)

	var le *lang.Error

	require.ErrorAs(t, err, &le)

	attrs := map[string]string{}
	for _, a := range le.Attrs() {
		attrs[a.Key] = a.Value.String()
	}

	assert.Equal(t, "<? $.name + ?>", attrs["marker"])
	assert.Equal(t, "20", attrs["offset"])
}

func TestResolve_UnknownFunctionWithoutExtensions(t *testing.T) {
	_, err := Resolve(t.Context(), "<? is_match('a', 'a') ?>", nil)

	assert.ErrorIs(t, err, lang.ErrTemplateResolve)
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancelCause(t.Context())
	cause := errors.New("shutting down")
	cancel(cause)

	_, err := Resolve(ctx, "<? 1 ?>", nil)

	assert.ErrorIs(t, err, lang.ErrCanceled)
	assert.ErrorIs(t, err, cause)

	// Blank markers and marker-free templates need no evaluation.
	got, err := Resolve(ctx, "a<? ?>b", nil)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestResolver_Extensions(t *testing.T) {
	r := New(WithExtensions(ext.Default()))

	got, err := r.Resolve(t.Context(),
		"<? int($.n) + 1 ?> <? extract($.url, 'https*://') ?> <? str([1, 2]) ?> <? MAX_INT ?>",
		map[string]any{"n": "41 apples", "url": "https://x"},
	)

	require.NoError(t, err)
	assert.Equal(t, "42 https:// [1,2] 9223372036854775807", got)
}

func TestResolver_QuestionMarkBody(t *testing.T) {
	r := New(WithExtensions(ext.Default()))

	// A body holding '?' is not a marker and is left as written.
	tmpl := "<? extract($.url, 'https?://') ?> <? $.n > 1 ? 'a' : 'b' ?> <? $.n ?>"

	got, err := r.Resolve(t.Context(), tmpl, map[string]any{"n": 2, "url": "http://x"})
	require.NoError(t, err)
	assert.Equal(t,
		"<? extract($.url, 'https?://') ?> <? $.n > 1 ? 'a' : 'b' ?> 2", got)
	assert.Len(t, Markers(tmpl), 1)
}

func TestResolver_Name(t *testing.T) {
	assert.Equal(t, DefaultName, New().Name())
	assert.Equal(t, DefaultName, New(WithName("")).Name())

	r := New(WithName("ctx"))
	assert.Equal(t, "ctx", r.Name())

	got, err := r.Resolve(t.Context(), "<? ctx.name ?>", person)
	require.NoError(t, err)
	assert.Equal(t, "Kar", got)

	_, err = r.Resolve(t.Context(), "<? $.name ?>", person)
	assert.Error(t, err)
}

type countingRecorder struct {
	mu                     sync.Mutex
	evals, resolves        int
	hits, misses, failures int
	markers                []int
}

func (c *countingRecorder) RecordEval(_ context.Context, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evals++

	if err != nil {
		c.failures++
	}
}

func (c *countingRecorder) RecordResolve(_ context.Context, markers int, _ time.Duration, _ error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolves++
	c.markers = append(c.markers, markers)
}

func (c *countingRecorder) RecordCache(_ context.Context, hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

func TestResolver_CacheAndMetrics(t *testing.T) {
	rec := &countingRecorder{}
	r := New(WithCache(true), WithMetrics(rec))

	for _, name := range []string{"a", "b", "c"} {
		got, err := r.Resolve(t.Context(),
			"<? $.name ?>-<? $.name ?>-<? ?>",
			map[string]any{"name": name},
		)
		require.NoError(t, err)
		assert.Equal(t, name+"-"+name+"-", got)
	}

	assert.Equal(t, 3, rec.resolves)
	assert.Equal(t, 3, rec.evals)
	assert.Equal(t, []int{1, 1, 1}, rec.markers)
	assert.Equal(t, 1, rec.misses)
	assert.Equal(t, 2, rec.hits)
	assert.Zero(t, rec.failures)
}

func TestResolver_Concurrent(t *testing.T) {
	r := New(WithCache(true), WithExtensions(ext.Config{Cast: true}))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Go(func() {
			data := map[string]any{"n": i}

			got, err := r.Resolve(context.Background(), "<? str($.n * 2) ?>", data)
			if assert.NoError(t, err) {
				assert.Equal(t, strconv.Itoa(i*2), got)
			}
		})
	}

	wg.Wait()
}

func TestResolver_Markers(t *testing.T) {
	got := New().Markers("x <? a ?> y")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Body)
}
