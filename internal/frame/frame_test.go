package frame_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neonfolio/internal/frame"
)

var _ = Describe("Queue", func() {
	var (
		q   *frame.Queue
		now time.Time
	)

	BeforeEach(func() {
		q = frame.NewQueue()
		now = time.Unix(0, 0)
	})

	It("runs callbacks in registration order", func() {
		var order []int
		q.Request(func(time.Time) { order = append(order, 1) })
		q.Request(func(time.Time) { order = append(order, 2) })

		Expect(q.Flush(now)).To(Equal(2))
		Expect(order).To(Equal([]int{1, 2}))
		Expect(q.Pending()).To(BeZero())
	})

	It("defers callbacks requested during a flush to the next flush", func() {
		calls := 0
		var again frame.Callback
		again = func(time.Time) {
			calls++
			q.Request(again)
		}
		q.Request(again)

		q.Flush(now)
		Expect(calls).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))

		q.Flush(now)
		Expect(calls).To(Equal(2))
	})

	It("never fires a cancelled callback", func() {
		fired := false
		id := q.Request(func(time.Time) { fired = true })
		q.Cancel(id)

		Expect(q.Flush(now)).To(BeZero())
		Expect(fired).To(BeFalse())
	})

	It("honours cancellation issued by an earlier callback in the same batch", func() {
		fired := false
		var victim frame.ID
		q.Request(func(time.Time) { q.Cancel(victim) })
		victim = q.Request(func(time.Time) { fired = true })

		Expect(q.Flush(now)).To(Equal(1))
		Expect(fired).To(BeFalse())
	})

	It("ignores unknown and zero ids", func() {
		q.Request(func(time.Time) {})
		q.Cancel(0)
		q.Cancel(999)
		Expect(q.Pending()).To(Equal(1))
	})

	It("does not register nil callbacks", func() {
		Expect(q.Request(nil)).To(Equal(frame.ID(0)))
		Expect(q.Pending()).To(BeZero())
	})
})

var _ = Describe("Loop", func() {
	var q *frame.Queue

	BeforeEach(func() {
		q = frame.NewQueue()
	})

	It("runs once per flush while started", func() {
		ticks := 0
		l := frame.Start(q, func(time.Time) { ticks++ })
		for i := 0; i < 5; i++ {
			q.Flush(time.Now())
		}
		Expect(ticks).To(Equal(5))
		Expect(l.Running()).To(BeTrue())
		Expect(q.Pending()).To(Equal(1))
	})

	It("leaves nothing registered after Stop", func() {
		ticks := 0
		l := frame.Start(q, func(time.Time) { ticks++ })
		q.Flush(time.Now())
		l.Stop()

		Expect(q.Pending()).To(BeZero())
		q.Flush(time.Now())
		Expect(ticks).To(Equal(1))
		Expect(l.Running()).To(BeFalse())
	})

	It("tolerates repeated Stop calls", func() {
		l := frame.Start(q, func(time.Time) {})
		Expect(func() {
			l.Stop()
			l.Stop()
		}).NotTo(Panic())
		Expect(q.Pending()).To(BeZero())
	})

	It("can be stopped from inside its own callback", func() {
		ticks := 0
		var l *frame.Loop
		l = frame.Start(q, func(time.Time) {
			ticks++
			l.Stop()
		})
		q.Flush(time.Now())
		q.Flush(time.Now())

		Expect(ticks).To(Equal(1))
		Expect(q.Pending()).To(BeZero())
	})

	It("is inert without a scheduler", func() {
		l := frame.Start(nil, func(time.Time) {})
		Expect(l.Running()).To(BeFalse())
		Expect(l.Stop).NotTo(Panic())
	})
})
