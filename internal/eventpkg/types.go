// Package eventpkg defines the EventPackage wire type ingested by the
// server and its canonical hash.
package eventpkg

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldValue is the polymorphic annotation value: string, number, boolean,
// or null. It marshals/unmarshals as the bare JSON scalar (Rust's
// #[serde(untagged)] enum), not a tagged object.
type FieldValue struct {
	str    *string
	num    *float64
	boolean *bool
	isNull  bool
}

func NewStringValue(s string) FieldValue  { return FieldValue{str: &s} }
func NewNumberValue(n float64) FieldValue { return FieldValue{num: &n} }
func NewBoolValue(b bool) FieldValue      { return FieldValue{boolean: &b} }
func NewNullValue() FieldValue            { return FieldValue{isNull: true} }

func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.str != nil:
		return json.Marshal(*v.str)
	case v.num != nil:
		return json.Marshal(*v.num)
	case v.boolean != nil:
		return json.Marshal(*v.boolean)
	default:
		return []byte("null"), nil
	}
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = FieldValue{isNull: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FieldValue{str: &s}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = FieldValue{boolean: &b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = FieldValue{num: &n}
		return nil
	}
	return fmt.Errorf("eventpkg: FieldValue must be string, number, boolean, or null")
}

// MediaType enumerates the supported media MIME types.
type MediaType string

const (
	MediaTypeImageJPEG MediaType = "image/jpeg"
	MediaTypeImagePNG  MediaType = "image/png"
	MediaTypeImageGIF  MediaType = "image/gif"
	MediaTypeVideoMP4  MediaType = "video/mp4"
)

// Extension returns the conventional file extension for a media type, used
// by the storage key scheme.
func (m MediaType) Extension() string {
	switch m {
	case MediaTypeImageJPEG:
		return "jpg"
	case MediaTypeImagePNG:
		return "png"
	case MediaTypeImageGIF:
		return "gif"
	case MediaTypeVideoMP4:
		return "mp4"
	default:
		return "bin"
	}
}

// EventSource is the originating client platform.
type EventSource string

const (
	EventSourceWeb    EventSource = "web"
	EventSourceMobile EventSource = "mobile"
)

// EventAnnotation is a single labeled value attached to an event.
type EventAnnotation struct {
	LabelID   string     `json:"labelId"`
	Value     FieldValue `json:"value"`
	Timestamp time.Time  `json:"timestamp"`
}

// EventMedia is optional inline media attached to an event.
type EventMedia struct {
	Type         MediaType `json:"type"`
	Data         string    `json:"data"` // base64-encoded raw bytes
	Name         string    `json:"name"`
	Size         uint64    `json:"size"`
	LastModified uint64    `json:"lastModified"`
}

// EventMetadata carries provenance for an event.
type EventMetadata struct {
	CreatedAt time.Time   `json:"createdAt"`
	CreatedBy *string     `json:"createdBy,omitempty"`
	Source    EventSource `json:"source"`
}

// EventPackage is the unit ingested by the server — opaque to the
// authentication core beyond its canonical hash (§4.8).
type EventPackage struct {
	ID          string            `json:"id"`
	Version     string            `json:"version"`
	Annotations []EventAnnotation `json:"annotations"`
	Media       *EventMedia       `json:"media,omitempty"`
	Metadata    EventMetadata     `json:"metadata"`
}

// ValidationResult reports structural problems with an EventPackage found
// by Validate.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Validate checks the structural invariants an EventPackage must satisfy:
// at least one annotation, a non-empty version, a label_id on every
// annotation, and well-formed media fields when media is present.
func (ep EventPackage) Validate() ValidationResult {
	var errs []string

	if len(ep.Annotations) == 0 {
		errs = append(errs, "event package must contain at least one annotation")
	}
	if ep.Version == "" {
		errs = append(errs, "event package must have a version")
	}
	for i, a := range ep.Annotations {
		if a.LabelID == "" {
			errs = append(errs, fmt.Sprintf("annotation %d must have a labelId", i))
		}
	}
	if ep.Media != nil {
		if ep.Media.Data == "" {
			errs = append(errs, "media data cannot be empty")
		}
		if ep.Media.Name == "" {
			errs = append(errs, "media name cannot be empty")
		}
		if ep.Media.Size == 0 {
			errs = append(errs, "media size must be greater than 0")
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
