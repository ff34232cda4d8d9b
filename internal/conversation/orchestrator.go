package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/geniespace/genie-mcp/internal/genie"
	"github.com/geniespace/genie-mcp/internal/poll"
	"github.com/geniespace/genie-mcp/internal/ratelimit"
)

// MessageResult is the shaped outcome of one question.
type MessageResult struct {
	ConversationID string           `json:"conversation_id"`
	MessageID      string           `json:"message_id"`
	Status         string           `json:"status"`
	ResponseText   string           `json:"response_text,omitempty"`
	SQLQuery       string           `json:"sql_query,omitempty"`
	QueryResult    *QueryResultData `json:"query_result,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// QueryResultData is a shaped result set.
type QueryResultData struct {
	Schema   []Column `json:"schema"`
	Rows     [][]any  `json:"rows"`
	RowCount int      `json:"row_count"`
}

// Column describes one result column.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Orchestrator runs the ask/continue protocol: rate-limit, submit,
// long-poll the message to a terminal status, extract results.
//
// Within a single conversation, callers must not pipeline: a follow-up
// must only be issued after the prior message reached a terminal state.
// The orchestrator does not serialize concurrent calls against the same
// conversation.
type Orchestrator struct {
	client  *genie.Client
	limiter *ratelimit.Limiter
	tracker *Tracker
	logger  *zap.Logger
}

// NewOrchestrator wires an orchestrator from its collaborators.
func NewOrchestrator(client *genie.Client, limiter *ratelimit.Limiter, tracker *Tracker, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{client: client, limiter: limiter, tracker: tracker, logger: logger}
}

// AskQuestion submits a question as a new conversation and waits for the
// answer. Rate-limit acquisition may suspend the caller but never fails;
// exceeding timeout while polling yields a TimeoutError, which is
// distinct from a remote-reported FAILED status.
func (o *Orchestrator) AskQuestion(ctx context.Context, spaceID, question string, timeout, interval time.Duration) (*MessageResult, error) {
	if err := o.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	started, err := o.client.StartConversation(ctx, spaceID, question)
	if err != nil {
		return nil, err
	}

	return o.awaitMessage(ctx, spaceID, started.ConversationID, started.MessageID, timeout, interval)
}

// ContinueConversation posts a follow-up question into an existing
// conversation; the protocol is otherwise identical to AskQuestion.
func (o *Orchestrator) ContinueConversation(ctx context.Context, spaceID, conversationID, question string, timeout, interval time.Duration) (*MessageResult, error) {
	if err := o.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	msg, err := o.client.CreateMessage(ctx, spaceID, conversationID, question)
	if err != nil {
		return nil, err
	}

	return o.awaitMessage(ctx, spaceID, conversationID, msg.MessageID, timeout, interval)
}

// ActiveConversation returns the tracked conversation for a space, if a
// recent one exists.
func (o *Orchestrator) ActiveConversation(spaceID string) (Context, bool) {
	return o.tracker.Get(spaceID)
}

// awaitMessage polls the message until it reaches a terminal status and
// shapes the outcome.
func (o *Orchestrator) awaitMessage(ctx context.Context, spaceID, conversationID, messageID string, timeout, interval time.Duration) (*MessageResult, error) {
	check := func() (bool, *MessageResult, error) {
		msg, err := o.client.GetMessage(ctx, spaceID, conversationID, messageID)
		if err != nil {
			return false, nil, err
		}
		if !genie.IsTerminalStatus(msg.Status) {
			return false, nil, nil
		}

		result := &MessageResult{
			ConversationID: conversationID,
			MessageID:      messageID,
			Status:         msg.Status,
			ResponseText:   msg.Content,
		}
		if msg.Error != nil {
			result.Error = *msg.Error
		}
		if msg.Status == genie.StatusCompleted {
			o.extractAttachments(ctx, spaceID, conversationID, messageID, msg, result)
		}
		return true, result, nil
	}

	result, err := poll.UntilComplete(ctx, check, timeout, interval)
	if err != nil {
		if errors.Is(err, poll.ErrTimeout) {
			return nil, &genie.TimeoutError{Message: fmt.Sprintf(
				"Question timed out after %s while waiting for message %s. Consider increasing timeout_seconds.",
				timeout, messageID)}
		}
		return nil, err
	}

	// Only a completed question moves the conversation context forward;
	// failed or cancelled messages leave the last good context in place.
	if result.Status == genie.StatusCompleted {
		o.tracker.Update(spaceID, conversationID, messageID)
	}
	return result, nil
}

// extractAttachments pulls the first query attachment's SQL and, when a
// result handle is present, the shaped result set. Absence of a query
// attachment is expected; fetch failures are logged and swallowed so a
// partial success is preferred over failing an otherwise-successful
// question.
func (o *Orchestrator) extractAttachments(ctx context.Context, spaceID, conversationID, messageID string, msg *genie.Message, result *MessageResult) {
	for _, att := range msg.Attachments {
		if att.Query == nil {
			continue
		}
		result.SQLQuery = att.Query.Query

		if att.Query.QueryResultID != nil {
			qr, err := o.client.GetMessageQueryResult(ctx, spaceID, conversationID, messageID, att.AttachmentID)
			if err != nil {
				o.logger.Warn("fetching query result failed",
					zap.String("space_id", spaceID),
					zap.String("message_id", messageID),
					zap.Error(err),
				)
				return
			}
			result.QueryResult = ShapeQueryResult(qr)
		}
		return
	}
}

// ShapeQueryResult flattens the statement-execution response into
// {schema, rows, row_count}. Missing pieces shape to empty, not nil
// panics — the remote omits sections freely.
func ShapeQueryResult(qr *genie.QueryResult) *QueryResultData {
	data := &QueryResultData{Schema: []Column{}, Rows: [][]any{}}
	if qr == nil || qr.StatementResponse == nil {
		return data
	}
	stmt := qr.StatementResponse

	if stmt.Manifest != nil && stmt.Manifest.Schema != nil {
		for _, col := range stmt.Manifest.Schema.Columns {
			data.Schema = append(data.Schema, Column{Name: col.Name, Type: col.TypeText})
		}
	}
	if stmt.Result != nil && stmt.Result.DataArray != nil {
		data.Rows = stmt.Result.DataArray
	}
	data.RowCount = len(data.Rows)
	return data
}
