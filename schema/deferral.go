package schema

// StatusAccepted marks a deferral descriptor for a call the server queued.
const StatusAccepted = "accepted"

// Deferral is the payload a long-running call returns with HTTP 202 in
// place of a JSON-RPC response. SSEURL points at the event stream that
// eventually resolves the call identified by TaskID.
type Deferral struct {
	Status string `json:"status"`
	SSEURL string `json:"sseUrl"`
	TaskID string `json:"taskId"`
}

// Accepted reports whether the descriptor marks a queued call.
func (d *Deferral) Accepted() bool {
	return d.Status == StatusAccepted
}
