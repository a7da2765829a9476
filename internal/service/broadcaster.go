package service

// Event types pushed to WebSocket clients
const (
	EventProgress  = "progress_update"
	EventCompleted = "assessment_completed"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	BroadcastToHosts(msgType string, payload interface{})
}
