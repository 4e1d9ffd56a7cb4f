package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSlowQueryTracer(t *testing.T) {
	for _, tc := range []struct {
		name    string
		elapsed time.Duration
		logged  bool
	}{
		{"fast", 10 * time.Millisecond, false},
		{"at threshold", 100 * time.Millisecond, true},
		{"slow", 2 * time.Second, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			tracer := newSlowQueryTracer(&logger, 100*time.Millisecond)
			base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			calls := 0
			tracer.now = func() time.Time {
				calls++
				if calls == 1 {
					return base
				}
				return base.Add(tc.elapsed)
			}

			ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
			tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

			if tc.logged {
				assert.Contains(t, buf.String(), "slow query")
				assert.Contains(t, buf.String(), "SELECT 1")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestSlowQueryTracerWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	newSlowQueryTracer(&logger, time.Millisecond).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())
}

type recordingTracer struct {
	starts, ends int
}

func (r *recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	r.starts++
	return ctx
}

func (r *recordingTracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {
	r.ends++
}

func TestMultiTracerFansOut(t *testing.T) {
	a, b := &recordingTracer{}, &recordingTracer{}
	mt := &multiTracer{tracers: []pgx.QueryTracer{a, b}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1, a.starts)
	assert.Equal(t, 1, b.ends)
}
