package history_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus/internal/classifier"
	"nimbus/internal/evaluation"
	"nimbus/internal/history"
	"nimbus/internal/testsupport"
)

func sampleReport(started time.Time) evaluation.Report {
	outcomes := []evaluation.Outcome{
		{
			Case:       evaluation.Case{Suite: evaluation.SuiteEdge, Text: "Software como servicio en la nube", Expected: classifier.SaaS},
			Got:        classifier.SaaS,
			Confidence: 0.9,
			Passed:     true,
		},
		{
			Case:       evaluation.Case{Suite: evaluation.SuiteEdge, Text: "Servicio de nube para aplicaciones", Expected: classifier.Undetermined},
			Got:        classifier.Error,
			Confidence: 0,
			Err:        "",
		},
	}
	return evaluation.Report{
		Suite:     evaluation.SuiteEdge,
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
		Outcomes:  outcomes,
		Overall: evaluation.Summary{
			Suite:             evaluation.SuiteAll,
			Total:             2,
			Passed:            1,
			Failed:            1,
			Errored:           1,
			Accuracy:          0.5,
			AverageConfidence: 0.45,
		},
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	assert.Equal(t, cfg.HistoryDBPath(), store.Path())
	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	// Reopening must not re-apply migrations.
	require.NoError(t, store.Close())
	reopened := testsupport.MustOpenHistory(t, cfg)
	_, err = reopened.ListRuns(context.Background(), 1)
	assert.NoError(t, err)
}

func TestRecordAndGetRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recorded, err := store.RecordRun(ctx, history.NewRun(sampleReport(started), "deepseek/deepseek-chat"))
	require.NoError(t, err)
	require.NotEmpty(t, recorded.ID)

	fetched, err := store.GetRun(ctx, recorded.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, fetched.ID)
	assert.Equal(t, "deepseek/deepseek-chat", fetched.Model)
	assert.Equal(t, evaluation.SuiteEdge, fetched.Suite)
	assert.True(t, fetched.StartedAt.Equal(started), "started %s, got %s", started, fetched.StartedAt)
	assert.Equal(t, 1500*time.Millisecond, fetched.Duration)
	assert.Equal(t, 2, fetched.Total)
	assert.Equal(t, 1, fetched.Passed)
	assert.Equal(t, 1, fetched.Errored)
	assert.Equal(t, 0.5, fetched.Accuracy)

	require.Len(t, fetched.Outcomes, 2)
	first := fetched.Outcomes[0]
	assert.Equal(t, "SaaS", first.Expected)
	assert.Equal(t, "SaaS", first.Got)
	assert.True(t, first.Passed)
	second := fetched.Outcomes[1]
	assert.Equal(t, "Undetermined", second.Expected)
	assert.Equal(t, "Error", second.Got)
	assert.False(t, second.Passed)
}

func TestGetRunUnknown(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	_, err := store.GetRun(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}

func TestListRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	offsets := []time.Duration{0, 500 * time.Millisecond, time.Second, 2 * time.Hour}
	for _, offset := range offsets {
		_, err := store.RecordRun(ctx, history.NewRun(sampleReport(base.Add(offset)), "m"))
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	want := []time.Time{base.Add(2 * time.Hour), base.Add(time.Second), base.Add(500 * time.Millisecond)}
	for i, run := range runs {
		assert.True(t, run.StartedAt.Equal(want[i]), "run %d: expected %s, got %s", i, want[i], run.StartedAt)
		assert.Empty(t, run.Outcomes, "ListRuns should not load outcomes")
	}
}

func TestRecordRunConcurrentWriters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenHistory(t, cfg)
	second := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := range 10 {
		store := first
		if i%2 == 1 {
			store = second
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.RecordRun(ctx, history.NewRun(sampleReport(time.Now()), "m"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	runs, err := first.ListRuns(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, runs, 10)
}

func TestRecordRunCancelledWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	holder := testsupport.MustOpenHistory(t, cfg)
	waiter := testsupport.MustOpenHistory(t, cfg)

	release := make(chan struct{})
	locked := make(chan struct{})
	go func() {
		_ = holder.WithWriteLock(context.Background(), func() error {
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := waiter.RecordRun(ctx, history.NewRun(sampleReport(time.Now()), "m"))
	assert.Error(t, err, "RecordRun must fail while another writer holds the lock")
}
