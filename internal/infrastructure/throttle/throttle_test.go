package throttle

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/time/rate"
)

// recordingWriter remembers the size of every write.
type recordingWriter struct {
	bytes.Buffer
	sizes []int
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.sizes = append(w.sizes, len(p))
	return w.Buffer.Write(p)
}

func TestThrottle(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("seismogram"), 100)

	Convey("Throttle", t, func() {
		ctx := context.Background()

		Convey("NewLimiter", func() {
			l := NewLimiter(1000, 0)
			So(l.Burst(), ShouldEqual, 1000)
			So(l.Limit(), ShouldEqual, rate.Limit(1000))

			So(NewLimiter(1000, 10).Burst(), ShouldEqual, 10)
		})

		Convey("Writer splits writes at the burst size", func() {
			out := &recordingWriter{}
			w := NewWriter(ctx, out, NewLimiter(1<<30, 256))

			n, err := w.Write(payload)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, len(payload))
			So(out.Bytes(), ShouldResemble, payload)
			So(out.sizes, ShouldResemble, []int{256, 256, 256, 232})
		})

		Convey("Reader passes data through", func() {
			r := NewReader(ctx, bytes.NewReader(payload), NewLimiter(1<<30, 64))

			got, err := io.ReadAll(r)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, payload)

			buf := make([]byte, 100)
			n, err := NewReader(ctx, bytes.NewReader(payload), NewLimiter(1<<30, 64)).Read(buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 64)
		})

		Convey("unlimited rate is not chunked", func() {
			out := &recordingWriter{}
			w := NewWriter(ctx, out, rate.NewLimiter(rate.Inf, 1))

			_, err := w.Write(payload)
			So(err, ShouldBeNil)
			So(out.sizes, ShouldResemble, []int{len(payload)})
		})

		Convey("cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			out := &recordingWriter{}
			n, err := NewWriter(cctx, out, NewLimiter(1<<30, 64)).Write(payload)
			So(n, ShouldEqual, 0)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(out.Len(), ShouldEqual, 0)

			n, err = NewReader(cctx, bytes.NewReader(payload), NewLimiter(1<<30, 64)).Read(make([]byte, 10))
			So(n, ShouldEqual, 0)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
