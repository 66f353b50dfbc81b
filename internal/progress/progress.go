// internal/progress/progress.go
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"mindex-core/sequence"
)

// Tracker renders a read-level progress bar while an index build pulls
// reads from its sources.
type Tracker struct {
	pbs *mpb.Progress
	bar *mpb.Bar
}

// New sets up a bar over total reads, rendered to out.
func New(out io.Writer, total int64) *Tracker {
	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(out))
	bar := pbs.AddBar(total,
		mpb.PrependDecorators(
			decor.Name("sketched reads: "),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &Tracker{pbs: pbs, bar: bar}
}

// Source wraps src so every read pulled during the build advances the bar.
func (t *Tracker) Source(src sequence.Source) sequence.Source {
	return tracked{src: src, bar: t.bar}
}

// Done finishes rendering; safe to call after a failed build.
func (t *Tracker) Done() {
	t.bar.SetTotal(-1, true)
	t.pbs.Wait()
}

type tracked struct {
	src sequence.Source
	bar *mpb.Bar
}

func (t tracked) NumReads() int { return t.src.NumReads() }

func (t tracked) Read(i int) (sequence.Record, error) {
	rec, err := t.src.Read(i)
	if err == nil {
		t.bar.Increment()
	}
	return rec, err
}
