package led

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
)

// A Sink delivers a marshalled frame to an ledrx device.
type Sink func(payload []byte) error

// MqttSink publishes frames to topic, waiting up to timeout for delivery.
func MqttSink(client mqtt.Client, topic string, timeout time.Duration) Sink {
	return func(payload []byte) error {
		token := client.Publish(topic, 0, false, payload)
		if !token.WaitTimeout(timeout) {
			return fmt.Errorf("publish to %s: timed out after %s", topic, timeout)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}
		return nil
	}
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	clock      stream.Stream[int64]
	controller *Controller
	sink       Sink
	logger     *slog.Logger
}

// NewStreamer creates an instance of a Streamer rendering frames of controller
// on every frame of clock.
func NewStreamer(clock stream.Stream[int64], controller *Controller, sink Sink, logger *slog.Logger) *Streamer {
	s := new(Streamer)
	s.clock = clock
	s.controller = controller
	s.sink = sink
	s.logger = logger
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SendFrame renders frame and sends it to the device.
func (s *Streamer) SendFrame(frame int64) error {
	f := s.controller.CalculateFrame(frame)
	b, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal frame %d: %w", frame, err)
	}
	return s.sink(b)
}

// Run causes the Streamer to send frames until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	s.logger.Info("streaming", slog.Int("fps", animation.FrameRate))
	s.clock.Subscribe(ctx, stream.Observer[int64]{
		OnNext: func(frame int64) {
			if err := s.SendFrame(frame); err != nil {
				s.logger.Warn("frame dropped", slog.Int64("frame", frame), slog.Any("err", err))
			}
		},
	})
	<-ctx.Done()
}
