package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Extraction methods recorded in Metadata.Method.
const (
	MethodText    = "text"     // local text sent in the prompt
	MethodInline  = "inline"   // document or image sent as inline data
	MethodURLOnly = "url-only" // page unreadable, URL alone sent
)

// Metadata describes where an extracted profile came from.
type Metadata struct {
	URL            string   `json:"url,omitempty"`
	FileName       string   `json:"file_name,omitempty"`
	MimeType       string   `json:"mime_type,omitempty"`
	Kind           Kind     `json:"kind"`
	Method         string   `json:"method"`
	Platform       string   `json:"platform,omitempty"`
	TextLength     int      `json:"text_length"`
	Timestamp      string   `json:"timestamp"` // RFC3339 format
	Hash           string   `json:"hash"`      // SHA256 hex digest of the input
	ExtractedLinks []string `json:"extracted_links,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content []byte, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
