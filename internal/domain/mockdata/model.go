package mockdata

// NewID marks a record that has not been persisted yet.
const NewID int64 = -1

// DefaultType matches requests of any method.
const DefaultType = "all"

// DefaultContentType is served when a record leaves contentType empty.
const DefaultContentType = "application/json"

// Record is a simulated API endpoint definition served for testing.
//
// CreatedAt and URL are filled in when records are read: the backend sends
// CreatedAt as RFC 3339 and the store rewrites it for display and computes URL.
type Record struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Enabled     bool   `json:"enabled"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Delay       int64  `json:"delay"`
	ContentType string `json:"contentType"`
	Response    string `json:"response"`
	ProjectID   string `json:"projectId"`
	CreatedAt   string `json:"createdAt,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Payload is the body of create and update requests. It never carries an ID;
// ProjectID is only sent on create.
type Payload struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Enabled     bool   `json:"enabled"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Delay       int64  `json:"delay"`
	ContentType string `json:"contentType"`
	Response    string `json:"response"`
	ProjectID   string `json:"projectId,omitempty"`
}

// Payload strips the record down to its writable fields.
func (r Record) Payload() Payload {
	return Payload{
		Name:        r.Name,
		Type:        r.Type,
		Enabled:     r.Enabled,
		Path:        r.Path,
		Description: r.Description,
		Delay:       r.Delay,
		ContentType: r.ContentType,
		Response:    r.Response,
		ProjectID:   r.ProjectID,
	}
}

// Draft returns an unsaved record with default fields owned by projectID.
func Draft(projectID string) Record {
	return Record{
		ID:        NewID,
		Type:      DefaultType,
		Enabled:   true,
		ProjectID: projectID,
	}
}

// Envelope wraps every backend response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns nil for a successful envelope and a *RejectedError otherwise.
func (e Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	return &RejectedError{Message: e.Message}
}

// RejectedError is an envelope that came back with success false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return "request rejected: " + e.Message
}
