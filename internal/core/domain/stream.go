package domain

// StreamEventKind tags the variants of a StreamEvent
type StreamEventKind string

const (
	StreamStart    StreamEventKind = "start"
	StreamSources  StreamEventKind = "sources"
	StreamContent  StreamEventKind = "content"
	StreamMetadata StreamEventKind = "metadata"
	StreamDone     StreamEventKind = "done"
	StreamError    StreamEventKind = "error"
)

// StreamEvent is one event in a streamed answer. The orchestrator guarantees
// the kind sequence start, sources, content*, metadata, (done|error): start is
// always first, sources precedes the first content, and done or error is
// terminal - nothing is emitted after either.
//
// Only the fields matching Kind are populated; the encoder switches
// exhaustively on Kind so illegal frames are unrepresentable on the wire.
type StreamEvent struct {
	Kind StreamEventKind

	UserID   string          // start
	Sources  []*Source       // sources
	Content  string          // content
	Metadata *AnswerMetadata // metadata
	Message  string          // error
}

// Terminal reports whether no further events may follow this one
func (e StreamEvent) Terminal() bool {
	return e.Kind == StreamDone || e.Kind == StreamError
}

// StartEvent opens a stream with the request's generated identifier
func StartEvent(userID string) StreamEvent {
	return StreamEvent{Kind: StreamStart, UserID: userID}
}

// SourcesEvent carries the deduplicated citations, emitted before any content
func SourcesEvent(sources []*Source) StreamEvent {
	if sources == nil {
		sources = []*Source{}
	}
	return StreamEvent{Kind: StreamSources, Sources: sources}
}

// ContentEvent carries one incremental answer fragment
func ContentEvent(fragment string) StreamEvent {
	return StreamEvent{Kind: StreamContent, Content: fragment}
}

// MetadataEvent carries the completed answer's metadata
func MetadataEvent(md *AnswerMetadata) StreamEvent {
	return StreamEvent{Kind: StreamMetadata, Metadata: md}
}

// DoneEvent terminates a successful stream
func DoneEvent() StreamEvent {
	return StreamEvent{Kind: StreamDone}
}

// ErrorEvent terminates a failed stream. Already-emitted content is not
// retracted; the client sees a partial answer plus this explicit marker.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Kind: StreamError, Message: message}
}
