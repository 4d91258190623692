package wspump

import "fmt"

// CommandKind discriminates the type of a Command.
type CommandKind int

// Command kinds.
const (
	CommandSendText CommandKind = iota + 1
	CommandSendBinary
	CommandSendPing
	CommandSendPong
	CommandClose
	CommandForceQuit
)

// String returns the string representation of the CommandKind.
func (k CommandKind) String() string {
	switch k {
	case CommandSendText:
		return "send-text"
	case CommandSendBinary:
		return "send-binary"
	case CommandSendPing:
		return "send-ping"
	case CommandSendPong:
		return "send-pong"
	case CommandClose:
		return "close"
	case CommandForceQuit:
		return "force-quit"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Command is a single instruction enqueued into an AsyncClient's event loop.
// Commands are applied strictly in enqueue order.
type Command struct {
	Kind CommandKind
	Data []byte
}

// SendText builds a command that sends a text message.
func SendText(text string) Command {
	return Command{Kind: CommandSendText, Data: []byte(text)}
}

// SendBinary builds a command that sends a binary message.
func SendBinary(data []byte) Command {
	return Command{Kind: CommandSendBinary, Data: data}
}

// SendPing builds a command that sends a ping frame.
func SendPing(data []byte) Command {
	return Command{Kind: CommandSendPing, Data: data}
}

// SendPong builds a command that sends a pong frame.
func SendPong(data []byte) Command {
	return Command{Kind: CommandSendPong, Data: data}
}

// Close builds a command that starts a graceful close handshake. The loop
// keeps servicing reads and commands until the peer acknowledges.
func Close() Command {
	return Command{Kind: CommandClose}
}

// ForceQuit builds a command that terminates the loop immediately, skipping
// the close handshake.
func ForceQuit() Command {
	return Command{Kind: CommandForceQuit}
}
