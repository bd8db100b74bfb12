package player_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/TelemTobi/PlayKit/entities"
	"github.com/TelemTobi/PlayKit/player"
)

var _ = Describe("Renderer events", func() {
	It("Advances when the current video reaches its natural end", func() {
		factory := &FakeRendererFactory{AutoReady: true}
		items := []entities.Item{video("a"), video("b")}

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              items,
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		session.Play()

		current := renderBound(factory, items[0])
		Eventually(current.PlayCount).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(BeNumerically(">=", 1))

		current.EmitEnd()

		Eventually(session.CurrentIndex).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(Equal(1))
	})

	It("Signals ReachedEnd instead of advancing at the last item", func() {
		factory := &FakeRendererFactory{AutoReady: true}
		items := []entities.Item{video("a"), video("b")}

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              items,
			InitialIndex:       1,
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		session.Play()

		current := renderBound(factory, items[1])
		Eventually(current.PlayCount).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(BeNumerically(">=", 1))

		current.EmitEnd()

		Eventually(session.ReachedEnd()).
			WithTimeout(2 * time.Second).
			Should(Receive())

		Expect(session.CurrentIndex()).To(Equal(1))
	})

	It("Loops a loop-behavior video by seeking back to the start", func() {
		factory := &FakeRendererFactory{AutoReady: true}
		loopVideo := entities.NewVideoItem("v1", "https://cdn.example/v1.mp4", entities.Loop())

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              []entities.Item{loopVideo},
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		session.Play()

		current := renderBound(factory, loopVideo)
		Eventually(current.PlayCount).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(BeNumerically(">=", 1))

		current.EmitEnd()

		Eventually(current.Seeks).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(ContainElement(0.0))

		Consistently(session.ReachedEnd()).
			WithTimeout(300 * time.Millisecond).
			ShouldNot(Receive())
	})

	It("Projects renderer progress for the current video only", func() {
		factory := &FakeRendererFactory{AutoReady: true}
		items := []entities.Item{video("a"), video("b")}

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              items,
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		current := renderBound(factory, items[0])
		next := renderBound(factory, items[1])

		next.EmitProgress(55)
		current.EmitProgress(7.25)

		Eventually(session.ProgressInSeconds).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(Equal(7.25))
	})

	It("Normalizes an unknown video duration to 0", func() {
		factory := &FakeRendererFactory{AutoReady: true, Duration: math.NaN()}

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              []entities.Item{video("a")},
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		Eventually(session.Status).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(Equal(entities.SlotReady))

		Expect(session.DurationInSeconds()).To(Equal(0.0))
	})

	It("Reports the renderer duration once the video is ready", func() {
		factory := &FakeRendererFactory{AutoReady: true, Duration: 42}

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              []entities.Item{video("a")},
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		Eventually(session.DurationInSeconds).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(Equal(42.0))
	})
})

var _ = Describe("Notifications", func() {
	It("Emits videoRequested and videoStarted around playback start", func() {
		factory := &FakeRendererFactory{AutoReady: true}
		item := video("a")

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              []entities.Item{item},
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		session.Play()

		var requested player.Notification
		Eventually(session.Notifications()).
			WithTimeout(2 * time.Second).
			Should(Receive(&requested))

		Expect(requested.Type).To(Equal(player.NotificationVideoRequested))
		Expect(requested.URL).To(Equal(item.URL()))
		Expect(requested.Timestamp).NotTo(BeZero())

		var started player.Notification
		Eventually(session.Notifications()).
			WithTimeout(2 * time.Second).
			Should(Receive(&started))

		Expect(started.Type).To(Equal(player.NotificationVideoStarted))
		Expect(started.URL).To(Equal(item.URL()))
	})

	It("Emits videoStalled when a playing video drops back to loading", func() {
		factory := &FakeRendererFactory{AutoReady: true}
		item := video("a")

		session := newTestSession(factory, &player.PlaylistSessionOptions{
			Items:              []entities.Item{item},
			BackwardBufferSize: 1,
			ForwardBufferSize:  1,
			Focused:            true,
		})

		session.Play()

		current := renderBound(factory, item)
		Eventually(current.PlayCount).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(BeNumerically(">=", 1))

		current.EmitStatus(entities.SlotLoading, nil)

		Eventually(func() player.NotificationType {
			select {
			case notification := <-session.Notifications():
				return notification.Type
			default:
				return ""
			}
		}).
			WithTimeout(2 * time.Second).
			WithPolling(10 * time.Millisecond).
			Should(Equal(player.NotificationVideoStalled))
	})
})
