package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConversationOptions configures a Conversation
type ConversationOptions struct {
	Flow  Flow
	Clock Clock
	NewID func() string
}

// Conversation drives one session: build the request, append the user
// message optimistically, dispatch once, then append the remote or
// offline reply.
type Conversation struct {
	sessionID  string
	store      *SessionStore
	dispatcher Dispatcher
	flow       Flow
	now        Clock
	newID      func() string

	inflight sync.WaitGroup
}

// Exchange is the result of one send
type Exchange struct {
	User    Message
	Reply   Message
	Outcome Outcome
	// Notice is the user-facing offline notice, empty when delivered
	Notice  string
	Session *Session
}

// Result is delivered by SendAsync
type Result struct {
	Exchange *Exchange
	Err      error
}

// NewConversation binds a session id to a store and dispatcher
func NewConversation(sessionID string, store *SessionStore, dispatcher Dispatcher, opts ConversationOptions) (*Conversation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}
	if store == nil || dispatcher == nil {
		return nil, errors.New("session store and dispatcher are required")
	}

	c := &Conversation{
		sessionID:  sessionID,
		store:      store,
		dispatcher: dispatcher,
		flow:       opts.Flow,
		now:        opts.Clock,
		newID:      opts.NewID,
	}
	if c.flow == "" {
		c.flow = FlowChat
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c, nil
}

// SessionID returns the session this conversation writes to
func (c *Conversation) SessionID() string {
	return c.sessionID
}

// History returns the current session log
func (c *Conversation) History(ctx context.Context) *Session {
	return c.store.Load(ctx, c.sessionID)
}

// Send performs one exchange. Cancelling ctx does not abort an exchange
// already dispatched: the reply is still appended so the user message
// keeps its pair. Errors are returned only for input the layer rejects.
func (c *Conversation) Send(ctx context.Context, in RequestInput) (*Exchange, error) {
	env, err := BuildRequest(c.sessionID, in)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	user := NewUserMessage(c.newID(), env.DisplayText, c.now(), env.Language, env.Image)
	if _, err := c.store.Append(ctx, c.sessionID, user); err != nil {
		return nil, fmt.Errorf("failed to append user message: %w", err)
	}

	outcome := c.dispatcher.Send(ctx, env)

	ex := &Exchange{User: user, Outcome: outcome}
	if outcome.Delivered {
		language := outcome.DetectedLanguage
		if language == "" {
			language = env.Language
		}
		ex.Reply = NewAssistantMessage(c.newID(), outcome.Response, c.now(), language, false)
	} else {
		ex.Reply = NewAssistantMessage(c.newID(), OfflineReply(c.flow, outcome.Failure), c.now(), env.Language, true)
		if outcome.Failure == nil || outcome.Failure.Reason != FailureMalformed {
			ex.Notice = OfflineNotice
		}
		LogInfo("Session %s: using offline reply (%v)", c.sessionID, outcome.Failure)
	}

	session, err := c.store.Append(ctx, c.sessionID, ex.Reply)
	if err != nil {
		return nil, fmt.Errorf("failed to append reply: %w", err)
	}
	ex.Session = session
	return ex, nil
}

// SendAsync runs Send in the background. The returned channel receives
// exactly one result. Wait blocks until every background send finishes.
func (c *Conversation) SendAsync(ctx context.Context, in RequestInput) <-chan Result {
	out := make(chan Result, 1)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		ex, err := c.Send(ctx, in)
		out <- Result{Exchange: ex, Err: err}
	}()
	return out
}

// Wait blocks until all exchanges started with SendAsync have completed
func (c *Conversation) Wait() {
	c.inflight.Wait()
}
