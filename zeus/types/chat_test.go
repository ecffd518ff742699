package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartMarshalsOnlyActiveVariant(t *testing.T) {
	b, err := json.Marshal(TextPart(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"text","text":""}`, string(b))

	b, err = json.Marshal(ImagePart("https://cdn/x.jpg"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"image_url","image_url":{"url":"https://cdn/x.jpg"}}`, string(b))
}

func TestProviderMessageWireShape(t *testing.T) {
	msg := ProviderMessage{
		Role:    RoleUser,
		Content: []Part{TextPart("what goes with this?"), ImagePart("data:image/jpeg;base64,AAA")},
	}
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"role":"user",
		"content":[
			{"type":"text","text":"what goes with this?"},
			{"type":"image_url","image_url":{"url":"data:image/jpeg;base64,AAA"}}
		]}`, string(b))

	var back ProviderMessage
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "what goes with this?", back.TextContent())
	require.NotNil(t, back.Content[1].ImageURL)
	assert.Equal(t, "data:image/jpeg;base64,AAA", back.Content[1].ImageURL.URL)
}
