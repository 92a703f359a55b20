package eventpkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() EventPackage {
	return EventPackage{
		ID:      "11111111-1111-1111-1111-111111111111",
		Version: "1.0",
		Annotations: []EventAnnotation{
			{LabelID: "l1", Value: NewStringValue("v1"), Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Metadata: EventMetadata{
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Source:    EventSourceWeb,
		},
	}
}

func TestHashIsDeterministicAnd64Hex(t *testing.T) {
	ep := sampleEvent()
	h1, err := ep.Hash()
	require.NoError(t, err)
	h2, err := ep.Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	for _, c := range h1 {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
	}
}

func TestHashIgnoresMediaDataAndLastModified(t *testing.T) {
	ep := sampleEvent()
	ep.Media = &EventMedia{Type: MediaTypeImagePNG, Data: "AAAA", Name: "x.png", Size: 10, LastModified: 1}
	h1, err := ep.Hash()
	require.NoError(t, err)

	ep.Media.Data = "BBBB"
	ep.Media.LastModified = 2
	h2, err := ep.Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestHashChangesWithAnnotations(t *testing.T) {
	ep := sampleEvent()
	h1, err := ep.Hash()
	require.NoError(t, err)

	ep.Annotations[0].Value = NewStringValue("different")
	h2, err := ep.Hash()
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestValidateRequiresAnnotationsAndVersion(t *testing.T) {
	ep := EventPackage{}
	result := ep.Validate()
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 2)
}

func TestValidateValidEvent(t *testing.T) {
	result := sampleEvent().Validate()
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestFieldValueRoundTrip(t *testing.T) {
	ep := sampleEvent()
	data, err := ep.Annotations[0].Value.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"v1"`, string(data))

	var fv FieldValue
	require.NoError(t, fv.UnmarshalJSON([]byte("42")))
	out, err := fv.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "42", string(out))

	require.NoError(t, fv.UnmarshalJSON([]byte("null")))
	out, err = fv.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
