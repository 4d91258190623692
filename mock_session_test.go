package wspump_test

import (
	"context"
	"sync"

	"github.com/corvid-labs/wspump"
)

type readOutcome struct {
	msg *wspump.Message
	err error
}

// mockSession is a scripted Session. Reads consume the script in order; once
// the script is exhausted, reads report the peer's close acknowledgment if
// Close has been called, and no-message otherwise. Writes and closes are
// recorded for assertions.
type mockSession struct {
	mu         sync.Mutex
	script     []readOutcome
	writes     []wspump.Message
	writeErrs  []error
	readCalls  int
	closeCalls int
	closeState wspump.Status
}

func newMockSession() *mockSession {
	return &mockSession{}
}

func (m *mockSession) queueMessage(msgType wspump.MessageType, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, readOutcome{msg: &wspump.Message{Type: msgType, Data: data}})
}

func (m *mockSession) queueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, readOutcome{err: err})
}

// failNextWrite makes the next write return err.
func (m *mockSession) failNextWrite(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErrs = append(m.writeErrs, err)
}

func (m *mockSession) Read(_ context.Context) (*wspump.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCalls++
	if len(m.script) > 0 {
		out := m.script[0]
		m.script = m.script[1:]
		return out.msg, out.err
	}
	if m.closeCalls > 0 {
		return nil, &wspump.CloseError{}
	}
	return nil, wspump.ErrNoMessage
}

func (m *mockSession) Write(_ context.Context, msg *wspump.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writeErrs) > 0 {
		err := m.writeErrs[0]
		m.writeErrs = m.writeErrs[1:]
		return err
	}
	m.writes = append(m.writes, wspump.Message{Type: msg.Type, Data: append([]byte(nil), msg.Data...)})
	return nil
}

func (m *mockSession) Close(status wspump.Status, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
	m.closeState = status
	return nil
}

func (m *mockSession) readCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCalls
}

func (m *mockSession) closeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

func (m *mockSession) recordedWrites() []wspump.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	writes := make([]wspump.Message, len(m.writes))
	copy(writes, m.writes)
	return writes
}

var _ wspump.Session = &mockSession{}
