// Package wspump provides a client-side concurrency and event-lifecycle
// layer for WebSocket connections.
//
// A client owns one established session and exchanges discrete text and
// binary messages through an event loop, under one of two bindings:
//
//   - Client runs the loop on the calling goroutine and delivers outcomes
//     through synchronous Handler callbacks. Callbacks receive the client and
//     may issue further commands directly, without queuing.
//   - AsyncClient runs the loop on its own goroutine and exchanges values
//     through a command channel and an event channel, safe for concurrent
//     producers and consumers.
//
// Both bindings share the same iteration engine: poll hook, command drain,
// one read attempt, dispatch, idle hook. Events always arrive in
// loop-iteration order, and every termination path ends with a single Quit.
//
// # Quick Start
//
// Callback flavor:
//
//	type echoHandler struct {
//		wspump.BaseHandler
//	}
//
//	func (echoHandler) OnTextMessage(client *wspump.Client, data []byte) {
//		fmt.Printf("received: %s\n", data)
//		client.Close()
//	}
//
//	client, err := wspump.Dial("wss://echo.example.com", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	_ = client.SendText("hello")
//	_ = client.Run(echoHandler{})
//
// Channel flavor:
//
//	client, err := wspump.DialAsync("wss://echo.example.com", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	handle, _ := client.Run()
//	_ = client.SendText("hello")
//
//	for event := range client.Events() {
//		if event.Kind == wspump.EventTextMessage {
//			fmt.Printf("received: %s\n", event.Data)
//			_ = client.Close()
//		}
//	}
//	handle.Wait()
//
// The transport is pluggable: anything implementing Session can drive a
// client. The default implementation dials with github.com/coder/websocket;
// the natsconnection subpackage bridges a NATS subject pair into the same
// contract.
package wspump
