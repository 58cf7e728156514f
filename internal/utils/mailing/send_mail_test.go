package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationEmail(t *testing.T) {
	subject, body, err := VerificationEmail("https://crisisaid.example", "rahim", "tok123")
	require.NoError(t, err)
	assert.Equal(t, "Verify your CrisisAid account", subject)
	assert.Contains(t, body, "https://crisisaid.example/api/accounts/verify?token=tok123")
	assert.Contains(t, body, "rahim")
}

func TestApplicationDecisionEmailEscapesTitle(t *testing.T) {
	subject, body, err := ApplicationDecisionEmail("karim", "<Flood> relief", "approved")
	require.NoError(t, err)
	assert.Equal(t, "Your volunteer application was approved", subject)
	assert.Contains(t, body, "&lt;Flood&gt; relief")
	assert.Contains(t, body, "You can now post updates")

	_, body, err = ApplicationDecisionEmail("karim", "Flood", "rejected")
	require.NoError(t, err)
	assert.NotContains(t, body, "You can now post updates")
}

func TestSendMailRejectsBadPort(t *testing.T) {
	sender := NewSMTPSender(MailConfig{SMTPHost: "localhost", SMTPPort: "not-a-port"})
	assert.Error(t, sender.SendMail("someone@example.com", "hi", "<p>hi</p>"))
}
