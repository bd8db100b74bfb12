package bandwidth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/TelemTobi/PlayKit/bandwidth"
)

var _ = Describe("Bandwidth estimator", func() {
	It("Ignores non-positive samples", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		subscriber := estimator.Subscribe()

		estimator.AddSample(0)
		estimator.AddSample(-5e6)

		Expect(estimator.Current()).To(Equal(0.0))
		Expect(subscriber).NotTo(Receive())
	})

	It("Publishes the first usable sample immediately", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		subscriber := estimator.Subscribe()

		estimator.AddSample(2e6)

		Expect(subscriber).To(Receive(Equal(2.0)))
		Expect(estimator.Current()).To(Equal(2.0))
	})

	It("Drops duplicate raw samples", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		subscriber := estimator.Subscribe()

		estimator.AddSample(2e6)
		Expect(subscriber).To(Receive(Equal(2.0)))

		estimator.AddSample(2e6)
		Expect(subscriber).NotTo(Receive())
	})

	It("Averages samples within the aggregation window after the fast path", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		subscriber := estimator.Subscribe()

		estimator.AddSample(2e6)
		Expect(subscriber).To(Receive(Equal(2.0)))

		estimator.AddSample(4e6)

		// (2 + 4) / 2 Mbps
		Expect(subscriber).To(Receive(Equal(3.0)))
		Expect(estimator.Current()).To(Equal(3.0))
	})

	It("Suppresses publishing when the aggregate is unchanged", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		subscriber := estimator.Subscribe()

		estimator.AddSample(3e6)
		Expect(subscriber).To(Receive(Equal(3.0)))

		estimator.AddSample(4e6)
		Expect(subscriber).To(Receive(Equal(3.5)))

		// (3 + 4 + 3.5) / 3 == 3.5 again
		estimator.AddSample(3.5e6)
		Expect(subscriber).NotTo(Receive())
	})

	It("Serves multiple subscribers", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		first := estimator.Subscribe()
		second := estimator.Subscribe()

		estimator.AddSample(5e6)

		Expect(first).To(Receive(Equal(5.0)))
		Expect(second).To(Receive(Equal(5.0)))
	})

	It("Closes subscriber channels on Close and stops accepting samples", func() {
		estimator := bandwidth.NewEstimator(zerolog.Nop())
		subscriber := estimator.Subscribe()

		estimator.Close()
		estimator.AddSample(2e6)

		Expect(subscriber).To(BeClosed())
		Expect(estimator.Current()).To(Equal(0.0))
		Expect(estimator.Subscribe()).To(BeClosed())
	})
})
