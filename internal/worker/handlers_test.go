package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"onehux_backend/pkg/config"
)

func TestOperatorRecipientsFallback(t *testing.T) {
	Init(&config.Config{Email: config.EmailConfig{
		From:           "Onehux Web Service <noreply@onehux.com>",
		OperatorEmails: []string{"ops@onehux.com", "sales@onehux.com"},
	}})
	assert.Equal(t, []string{"ops@onehux.com", "sales@onehux.com"}, operatorRecipients())

	// An empty operator list must not break notification handlers.
	Init(&config.Config{Email: config.EmailConfig{
		From: "Onehux Web Service <noreply@onehux.com>",
	}})
	assert.Equal(t, []string{"Onehux Web Service <noreply@onehux.com>"}, operatorRecipients())
	assert.NotPanics(t, func() { _ = operatorRecipients()[0] })
}
