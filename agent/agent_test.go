package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/conversation"
)

func TestHistoryContentsAlternatesRoles(t *testing.T) {
	history := []conversation.Exchange{
		{User: "write an ad", AI: "Here is your ad."},
		{User: "make it shorter", AI: "Short ad."},
	}

	contents := historyContents(history)
	require.Len(t, contents, 4)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "write an ad", contents[0].Parts[0].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "Here is your ad.", contents[1].Parts[0].Text)
	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "model", contents[3].Role)
}

func TestIsImageData(t *testing.T) {
	assert.True(t, IsImageData("data:image/png;base64,aGVsbG8="))
	assert.False(t, IsImageData("Image generation failed: status=500"))
	assert.False(t, IsImageData(""))
}

func TestToolDeclarationsMatchPolicyNames(t *testing.T) {
	tools := toolDeclarations()
	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 2)

	names := []string{
		tools[0].FunctionDeclarations[0].Name,
		tools[0].FunctionDeclarations[1].Name,
	}
	assert.Contains(t, names, toolWebSearch)
	assert.Contains(t, names, toolGeneratePoster)

	// the policy must reference the declared tools by the exact names
	assert.Contains(t, SYSTEM_INSTRUCTION, toolWebSearch)
	assert.Contains(t, SYSTEM_INSTRUCTION, toolGeneratePoster)
}

func TestPolicyCoversAmbiguousKeywordsAndRefusal(t *testing.T) {
	assert.Contains(t, SYSTEM_INSTRUCTION, "Do you need a picture/image or just content for it?")
	assert.Contains(t, SYSTEM_INSTRUCTION, RefusalReply)
}
