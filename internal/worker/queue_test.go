package worker

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

type markJob int

func (markJob) Run() {}

func TestJobQueueWrapsAndGrows(t *testing.T) {
	convey.Convey("Given an empty queue", t, func() {
		var q jobQueue
		_, ok := q.Pop()
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(q.Len(), convey.ShouldEqual, 0)

		convey.Convey("Interleaved pushes and pops keep FIFO order across growth", func() {
			next, want := 0, 0
			for round := 0; round < 10; round++ {
				for i := 0; i < minQueueCap+round*3; i++ {
					q.Push(markJob(next))
					next++
				}
				for i := 0; i < minQueueCap/2; i++ {
					j, ok := q.Pop()
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(j, convey.ShouldEqual, markJob(want))
					want++
				}
			}
			convey.So(q.Len(), convey.ShouldEqual, next-want)
			for q.Len() > 0 {
				j, _ := q.Pop()
				convey.So(j, convey.ShouldEqual, markJob(want))
				want++
			}
			convey.So(want, convey.ShouldEqual, next)
			convey.So(q.head, convey.ShouldEqual, 0)
		})
	})
}
