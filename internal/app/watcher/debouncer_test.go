package watcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, files)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([][]string(nil), r.calls...)
}

func Test_Debouncer_CoalescesBurst(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(50*time.Millisecond, rec.record)
	defer d.Stop()

	d.Trigger("components/Search.vue")
	d.Trigger("App.vue")
	d.Trigger("components/Search.vue")

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 10*time.Millisecond)

	time.Sleep(80 * time.Millisecond)

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, []string{"App.vue", "components/Search.vue"}, calls[0])
}

func Test_Debouncer_ResetsOnNewEvents(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(60*time.Millisecond, rec.record)
	defer d.Stop()

	for i := 0; i < 4; i++ {
		d.Trigger("components/SideMenu.vue")
		time.Sleep(20 * time.Millisecond)
	}

	assert.Empty(t, rec.snapshot())
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
}

func Test_Debouncer_SeparateBursts(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	d.Trigger("a.vue")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger("b.vue")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	calls := rec.snapshot()
	assert.Equal(t, []string{"a.vue"}, calls[0])
	assert.Equal(t, []string{"b.vue"}, calls[1])
}

func Test_Debouncer_Stop(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(30*time.Millisecond, rec.record)

	d.Trigger("a.vue")
	d.Stop()
	d.Trigger("b.vue")

	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
}

func Test_Debouncer_MaxWait(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(40*time.Millisecond, rec.record)
	defer d.Stop()

	stop := time.After(700 * time.Millisecond)

loop:
	for {
		select {
		case <-stop:
			break loop
		default:
			d.Trigger("components/LogViewer.vue")
			time.Sleep(15 * time.Millisecond)
		}
	}

	assert.NotEmpty(t, rec.snapshot(), "a steady stream of events must still flush after the max wait")
}

func Test_Debouncer_StopIdempotent(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, func([]string) {})

	assert.NotPanics(t, func() {
		d.Stop()
		d.Stop()
		d.Trigger("a.vue")
	})
}
