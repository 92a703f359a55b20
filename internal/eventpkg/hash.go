package eventpkg

import (
	"encoding/json"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/hashutil"
)

// hashMedia mirrors the {type, size, name} subset of EventMedia that
// participates in the canonical hash, deliberately excluding data and
// lastModified, which are allowed to vary without changing event identity.
type hashMedia struct {
	Type MediaType `json:"type"`
	Size uint64    `json:"size"`
	Name string    `json:"name"`
}

// hashInput is {id, annotations, media, createdAt} in that exact field
// order, preserved because the hash is taken over the serialized byte
// sequence.
type hashInput struct {
	ID          string            `json:"id"`
	Annotations []EventAnnotation `json:"annotations"`
	Media       *hashMedia        `json:"media"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Hash computes the canonical event hash: hex_lowercase(SHA-256(compact
// JSON of {id, annotations, media:{type,size,name}|null, createdAt})).
func (ep EventPackage) Hash() (string, error) {
	input := hashInput{
		ID:          ep.ID,
		Annotations: ep.Annotations,
		CreatedAt:   ep.Metadata.CreatedAt,
	}
	if ep.Media != nil {
		input.Media = &hashMedia{
			Type: ep.Media.Type,
			Size: ep.Media.Size,
			Name: ep.Media.Name,
		}
	}

	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	sum := hashutil.SHA256(data)
	return hashutil.HexLower(sum), nil
}
