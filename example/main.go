package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/TelemTobi/PlayKit/bandwidth"
	"github.com/TelemTobi/PlayKit/entities"
	"github.com/TelemTobi/PlayKit/imagecache"
	"github.com/TelemTobi/PlayKit/player"
)

func waitSigTerm() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

// loggingRenderer is a stand-in decode backend that reports every item
// ready immediately. A real integration would wrap the platform's video
// surface here.
type loggingRenderer struct {
	events chan<- entities.RendererEvent
	logger zerolog.Logger
}

func (renderer *loggingRenderer) Prepare(item entities.Item) error {
	renderer.logger.Info().Str("id", item.ID()).Msg("prepare")

	renderer.events <- entities.RendererEvent{
		Renderer: renderer,
		Kind:     entities.RendererStatusChanged,
		Status:   entities.SlotReady,
	}

	return nil
}

func (renderer *loggingRenderer) Play()                { renderer.logger.Info().Msg("play") }
func (renderer *loggingRenderer) Pause()               { renderer.logger.Info().Msg("pause") }
func (renderer *loggingRenderer) SetRate(rate float64) {}
func (renderer *loggingRenderer) Seek(seconds float64) {}
func (renderer *loggingRenderer) Cancel()              {}
func (renderer *loggingRenderer) Duration() float64    { return 30 }

type loggingRendererFactory struct {
	logger zerolog.Logger
}

func (factory *loggingRendererFactory) NewRenderer(events chan<- entities.RendererEvent) (entities.Renderer, error) {
	return &loggingRenderer{events: events, logger: factory.logger}, nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	images, err := imagecache.New(imagecache.NewDefaultFetcher(), imagecache.DefaultCapacity, logger)

	if err != nil {
		panic(err)
	}

	estimator := bandwidth.NewEstimator(logger)

	items := []entities.Item{
		entities.NewImageItem("", "https://picsum.photos/1080/1920", 5*time.Second, entities.PlayOnce()),
		entities.NewVideoItem("", "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8", entities.PlayOnce()),
		entities.NewCustomItem("", 3*time.Second, entities.PlayOnce()),
	}

	session, err := player.NewPlaylistSessionEx(&loggingRendererFactory{logger: logger}, &player.PlaylistSessionOptions{
		Items:              items,
		InitialIndex:       0,
		BackwardBufferSize: 1,
		ForwardBufferSize:  2,
		Focused:            true,
		ImageCache:         images,
		Bandwidth:          estimator,
		Logger:             logger,
	})

	if err != nil {
		panic(err)
	}

	go func() {
		for notification := range session.Notifications() {
			logger.Info().
				Str("type", notification.Type).
				Str("url", notification.URL).
				Msg("notification")
		}
	}()

	go func() {
		<-session.ReachedEnd()
		logger.Info().Msg("playlist reached end")
	}()

	// Pretend the network got faster after a while.
	go func() {
		estimator.AddSample(1.5e6)
		time.Sleep(5 * time.Second)
		estimator.AddSample(8e6)
	}()

	session.Play()

	fmt.Println("Running... Ctrl-C to exit")
	waitSigTerm()

	_ = session.Close()
	estimator.Close()
}
