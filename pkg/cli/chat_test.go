package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/m-mizutani/horizon/pkg/usecase/chat"
)

type fakeReader struct {
	lines []string
	err   error
}

func (f *fakeReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", f.err
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

type stubLookup struct{}

func (stubLookup) Lookup(ctx context.Context, subject string) model.LookupResult {
	return &model.LookupNotFound{Query: subject}
}

func newTestSession(t *testing.T) *chat.Session {
	t.Helper()
	session, err := chat.New(context.Background(), chat.NewInput{
		Persona: model.Persona{Name: "HorizonAI", Version: "1.4 Nexus"},
		Lookup:  stubLookup{},
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

func TestRunLoop(t *testing.T) {
	ctx := context.Background()

	t.Run("exit word ends the conversation", func(t *testing.T) {
		session := newTestSession(t)
		var out bytes.Buffer

		runLoop(ctx, session, &fakeReader{lines: []string{"I like Go", "  Quit  ", "never read"}}, &out)

		gt.S(t, out.String()).Contains("HorizonAI: ")
		gt.S(t, out.String()).Contains("Goodbye! It was nice talking with you.")
		gt.A(t, session.History()).Length(1)
	})

	t.Run("end of input says goodbye", func(t *testing.T) {
		session := newTestSession(t)
		var out bytes.Buffer

		runLoop(ctx, session, &fakeReader{err: io.EOF}, &out)

		gt.S(t, out.String()).Contains("Goodbye! It was nice talking with you.")
		gt.A(t, session.History()).Length(0)
	})

	t.Run("interrupt stops without goodbye", func(t *testing.T) {
		session := newTestSession(t)
		var out bytes.Buffer

		runLoop(ctx, session, &fakeReader{lines: []string{"hello there"}, err: readline.ErrInterrupt}, &out)

		gt.S(t, out.String()).Contains("Conversation interrupted.")
		gt.False(t, bytes.Contains(out.Bytes(), []byte("Goodbye!")))
		gt.A(t, session.History()).Length(1)
	})

	t.Run("slash commands do not record turns", func(t *testing.T) {
		session := newTestSession(t)
		var out bytes.Buffer

		lines := []string{"Tell me about \"Mount Fuji\"", "/context", "/patterns", "/history", "exit"}
		runLoop(ctx, session, &fakeReader{lines: lines}, &out)

		gt.S(t, out.String()).Contains("Mount Fuji")
		gt.S(t, out.String()).Contains("1 turns this session")
		gt.A(t, session.History()).Length(1)
	})
}

func TestRun(t *testing.T) {
	t.Run("ask requires text", func(t *testing.T) {
		err := Run(context.Background(), []string{"horizon", "ask"})
		if err == nil {
			t.Fatal("expected error")
		}
		gt.Equal(t, err.Code, 1)
		gt.S(t, err.Message).Contains("text is required")
	})
}
