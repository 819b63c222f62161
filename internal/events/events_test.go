package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSON(t *testing.T) {
	end := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	e := Event{Type: ExtensionDeleted, RentID: 4, ExtensionID: 9, EndDate: &end, IsRentExtended: false}

	body, err := e.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "extension.deleted", decoded["type"])
	assert.Equal(t, float64(9), decoded["extensionId"])
	assert.Equal(t, "2024-03-13T00:00:00Z", decoded["endDate"])
	assert.Equal(t, false, decoded["isRentExtended"])
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.Publish(context.Background(), Event{Type: RentCreated}))
	assert.NoError(t, p.Close())
}
