package genie

// Typed response schemas for the remote Genie protocol. Optional fields
// are explicit: pointers decode to nil (meaning "not reported by the
// platform"); plain strings default to "". Nothing here is accessed by
// reflection or duck-typing.

// Message statuses reported by the platform. A message is terminal once
// it reaches one of Completed, Failed or Cancelled; everything else
// means work is still in flight.
const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

// IsTerminalStatus reports whether a message status is terminal.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed || status == StatusCancelled
}

// Space is one remotely stored Genie space.
type Space struct {
	SpaceID     string `json:"space_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`

	OwnerUserID      *string `json:"owner_user_id,omitempty"`
	CreatedTimestamp *int64  `json:"created_timestamp,omitempty"`
	UpdatedTimestamp *int64  `json:"updated_timestamp,omitempty"`

	// SerializedSpace is the wire-document JSON; populated only when the
	// caller asked for it.
	SerializedSpace string `json:"serialized_space,omitempty"`
}

// CreateSpaceRequest creates a new space.
type CreateSpaceRequest struct {
	WarehouseID     string `json:"warehouse_id"`
	SerializedSpace string `json:"serialized_space"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	ParentPath      string `json:"parent_path,omitempty"`
}

// UpdateSpaceRequest updates an existing space. Empty fields are left
// untouched remotely.
type UpdateSpaceRequest struct {
	SerializedSpace string `json:"serialized_space,omitempty"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	WarehouseID     string `json:"warehouse_id,omitempty"`
}

// ListSpacesResponse is one page of spaces.
type ListSpacesResponse struct {
	Spaces        []Space `json:"spaces"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

// StartConversationResponse identifies the new conversation and its
// first message.
type StartConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
}

// Message is one turn within a conversation.
type Message struct {
	MessageID        string       `json:"message_id"`
	ConversationID   string       `json:"conversation_id,omitempty"`
	Content          string       `json:"content,omitempty"`
	Status           string       `json:"status"`
	Error            *string      `json:"error,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
	CreatedTimestamp *int64       `json:"created_timestamp,omitempty"`
}

// Attachment carries either generated SQL or free text. Absence of a
// query attachment on a completed message is expected, not exceptional.
type Attachment struct {
	AttachmentID string           `json:"attachment_id,omitempty"`
	Query        *QueryAttachment `json:"query,omitempty"`
	Text         *TextAttachment  `json:"text,omitempty"`
}

// QueryAttachment is the SQL the engine generated for a question.
type QueryAttachment struct {
	Query         string  `json:"query,omitempty"`
	Description   string  `json:"description,omitempty"`
	QueryResultID *string `json:"query_result_id,omitempty"`
}

// TextAttachment is a free-text portion of an answer.
type TextAttachment struct {
	Content string `json:"content,omitempty"`
}

// Conversation is a summary of one conversation.
type Conversation struct {
	ConversationID   string `json:"conversation_id"`
	SpaceID          string `json:"space_id,omitempty"`
	Title            string `json:"title,omitempty"`
	CreatedTimestamp *int64 `json:"created_timestamp,omitempty"`
	UpdatedTimestamp *int64 `json:"updated_timestamp,omitempty"`
}

// ListConversationsResponse is one page of conversation summaries.
type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// ConversationDetail is a full conversation thread.
type ConversationDetail struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title,omitempty"`
	Messages       []Message `json:"messages,omitempty"`
}

// QueryResult wraps a statement execution result. The platform caps
// returned data at 5,000 rows.
type QueryResult struct {
	StatementResponse *StatementResponse `json:"statement_response,omitempty"`
}

// StatementResponse mirrors the SQL statement execution API shape.
type StatementResponse struct {
	Manifest *ResultManifest `json:"manifest,omitempty"`
	Result   *ResultData     `json:"result,omitempty"`
}

// ResultManifest describes the result schema.
type ResultManifest struct {
	Schema *ResultSchema `json:"schema,omitempty"`
}

// ResultSchema lists result columns.
type ResultSchema struct {
	Columns []ResultColumn `json:"columns,omitempty"`
}

// ResultColumn is one column of a result set.
type ResultColumn struct {
	Name     string `json:"name"`
	TypeText string `json:"type_text,omitempty"`
}

// ResultData carries the row data.
type ResultData struct {
	DataArray [][]any `json:"data_array,omitempty"`
}
