// Command echo connects to a WebSocket echo server, sends a message, prints
// the echoed reply, and closes gracefully.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvid-labs/wspump"
)

func main() {
	uri := "wss://echo.websocket.org"
	if len(os.Args) > 1 {
		uri = os.Args[1]
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)

	client, err := wspump.DialAsync(uri, &wspump.Options{
		SpinWait: 10 * time.Millisecond,
		NoDelay:  true,
		Logger:   &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("dial failed")
	}
	defer client.Shutdown()

	handle, err := client.Run()
	if err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}

	if err := client.SendText("Hello, WebSocket!"); err != nil {
		logger.Fatal().Err(err).Msg("send failed")
	}

	for event := range client.Events() {
		switch event.Kind {
		case wspump.EventActivated:
			logger.Info().Msg("activated")
		case wspump.EventTextMessage:
			fmt.Printf("received: %s\n", event.Data)
			_ = client.Close()
		case wspump.EventConnectionClosed:
			if event.Reason != nil {
				logger.Info().Str("reason", *event.Reason).Msg("connection closed")
			} else {
				logger.Info().Msg("connection closed")
			}
		case wspump.EventError:
			logger.Error().Str("error", event.Err).Msg("client error")
		}
	}

	handle.Wait()
}
