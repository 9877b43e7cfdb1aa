package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleBasedGenerator_PassesContextThrough(t *testing.T) {
	g := RuleBasedGenerator{}

	reply, err := g.Generate(context.Background(), "when are you open?", "",
		"We are open Monday through Saturday from 9 AM to 8 PM.")
	require.NoError(t, err)
	assert.Contains(t, reply, "Monday through Saturday")
	assert.Contains(t, reply, "salon documents")
}

func TestRuleBasedGenerator_CannedReplies(t *testing.T) {
	g := RuleBasedGenerator{}

	reply, err := g.Generate(context.Background(), "what services do you offer?", "", "")
	require.NoError(t, err)
	assert.Contains(t, reply, "We offer the following services")

	reply, err = g.Generate(context.Background(), "hello!", "", "")
	require.NoError(t, err)
	assert.Contains(t, reply, "Welcome to Glamour Salon")
}
