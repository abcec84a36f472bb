package service

import (
	"fmt"

	"github.com/c360studio/steering/document"
)

// ResolveRequest asks for the steering documents applying to a task.
type ResolveRequest struct {
	// RequestID uniquely identifies this request. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// File is the active file path, relative to the project root.
	File string `json:"file,omitempty"`

	// Tags are the explicitly referenced activation tags.
	Tags []string `json:"tags,omitempty"`

	// Description is the free-text task description used for ranking.
	Description string `json:"description,omitempty"`

	// Model selects a configured model budget.
	Model string `json:"model,omitempty"`

	// Budget is an explicit character budget override.
	Budget int `json:"budget,omitempty"`
}

// Validate checks the request fields.
func (r *ResolveRequest) Validate() error {
	if r.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	for _, tag := range r.Tags {
		if tag == "" {
			return fmt.Errorf("tags must not be empty strings")
		}
	}
	return nil
}

// DocumentPayload is one selected document in a resolve response.
type DocumentPayload struct {
	ID        string        `json:"id"`
	Title     string        `json:"title,omitempty"`
	Mode      document.Mode `json:"mode"`
	Content   string        `json:"content"`
	Score     float64       `json:"score"`
	Truncated bool          `json:"truncated,omitempty"`
}

// ResolveResponse is the ordered, budgeted document set for a task.
type ResolveResponse struct {
	RequestID string            `json:"request_id"`
	Documents []DocumentPayload `json:"documents"`
	Count     int               `json:"count"`
	TotalSize int               `json:"total_size"`
	Budget    int               `json:"budget"`
}

// DocumentInfo describes a registered document without its content.
type DocumentInfo struct {
	ID      string        `json:"id"`
	Title   string        `json:"title,omitempty"`
	Mode    document.Mode `json:"mode"`
	Pattern string        `json:"pattern,omitempty"`
	Tag     string        `json:"tag,omitempty"`
	Size    int           `json:"size"`
	Hash    string        `json:"hash,omitempty"`
}

// ListResponse is the document inventory.
type ListResponse struct {
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count"`
}

// ReloadResponse reports a registry reload.
type ReloadResponse struct {
	Success   bool     `json:"success"`
	Documents int      `json:"documents"`
	Invalid   []string `json:"invalid,omitempty"`
	Message   string   `json:"message,omitempty"`
}
