package model

import "encoding/json"

const (
	EventConnected = "connected"
	EventNewPost   = "new-post"
	EventTest      = "test"
)

// Event is pushed to stream subscribers. It serialises flat: {"event": name, ...data}.
type Event struct {
	Name string
	Data map[string]any
}

func (e Event) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(e.Data)+1)
	for k, v := range e.Data {
		flat[k] = v
	}
	flat["event"] = e.Name
	return json.Marshal(flat)
}
