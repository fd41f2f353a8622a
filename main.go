package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/api"
	"github.com/matt-g-everett/rxanim/config"
	"github.com/matt-g-everett/rxanim/led"
)

type app struct {
	Config     config.Config
	Logger     *slog.Logger
	Client     mqtt.Client
	Controller *led.Controller
	Streamer   *led.Streamer
	Patterns   []led.Pattern
}

func newApp(c config.Config, logger *slog.Logger) *app {
	a := new(app)
	a.Config = c
	a.Logger = logger
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.Logger.Info("connected", slog.String("broker", a.Config.MQTT.URL))
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	a.Logger.Warn("connection lost", slog.Any("err", err))
}

func (a *app) setup() error {
	easing, err := animation.EasingByName(a.Config.LED.Easing)
	if err != nil {
		return err
	}

	backColour, _ := colorful.Hex("#000005")
	r := rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	pixels := a.Config.LED.Pixels
	a.Patterns = []led.Pattern{
		led.NewTwinkle(pixels, 200, backColour, r),
		led.NewGradientTrail(pixels, led.Rainbow, 180, -1.8),
		led.NewStreak(pixels, 40, backColour, colorful.Hcl(280.0, 1.0, 0.4), r),
	}

	a.Controller = led.NewController(a.Patterns[0],
		led.WithTransition(a.Config.LED.Transition(), easing),
		led.WithControllerLogger(a.Logger))

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.MQTT.URL).
		SetClientID(a.Config.MQTT.ClientID).
		SetUsername(a.Config.MQTT.Username).
		SetPassword(a.Config.MQTT.Password).
		SetKeepAlive(a.Config.MQTT.KeepAliveDuration()).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)

	sink := led.MqttSink(a.Client, a.Config.MQTT.Topics.Stream, animation.FrameInterval)
	a.Streamer = led.NewStreamer(animation.EveryFrame, a.Controller, sink, a.Logger)
	return nil
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", a.Config.MQTT.URL, token.Error())
	}
	defer a.Client.Disconnect(250)

	if a.Config.LED.Brightness < 1 {
		a.Controller.FadeTo(a.Config.LED.Brightness, time.Second)
	}

	server := api.NewServer(animation.EveryFrame, a.Controller, a.Logger)
	go func() {
		if err := server.Serve(ctx, a.Config.API.Listen); err != nil {
			a.Logger.Error("status server stopped", slog.Any("err", err))
		}
	}()
	go a.Controller.Run(ctx, a.Patterns, a.Config.LED.Cycle())

	a.Streamer.Run(ctx)
	a.Logger.Info("stopped")
	return nil
}

func newLogger(c config.Config) *slog.Logger {
	level, _ := c.Log.SlogLevel()
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	c, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := newLogger(c)
	slog.SetDefault(logger)
	logger.Debug("config", slog.Any("led", c.LED), slog.String("broker", c.MQTT.URL))

	a := newApp(c, logger)
	if err := a.setup(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = config.Watch(ctx, *configPath, logger, func(c config.Config) {
		a.Controller.FadeTo(c.LED.Brightness, time.Second)
	})
	if err != nil {
		logger.Warn("config changes need a restart", slog.Any("err", err))
	}

	if err := a.run(ctx); err != nil {
		logger.Error("exiting", slog.Any("err", err))
		os.Exit(1)
	}
}
