package email

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWithoutSMTPLogsInstead(t *testing.T) {
	var buf bytes.Buffer
	svc := NewEmailService(SMTPConfig{FromEmail: "noreply@example.com"}, zerolog.New(&buf))

	require.NoError(t, svc.SendWelcomeEmail("asha@example.com", "Asha", "student"))
	require.NoError(t, svc.SendInterviewScheduledEmail("asha@example.com", "Asha", InterviewNotice{
		JobTitle: "SDE",
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Mode:     "Online",
		Round:    "1",
	}))

	assert.Contains(t, buf.String(), "welcome email not sent")
	assert.Contains(t, buf.String(), "interview email not sent")
}

func TestBuildMessage(t *testing.T) {
	svc := &EmailServiceImpl{config: SMTPConfig{FromName: "Placement Portal", FromEmail: "noreply@example.com"}}

	msg := svc.buildMessage("asha@example.com", "Hi", "<p>body</p>")

	assert.Equal(t, "From: Placement Portal <noreply@example.com>\r\n"+
		"To: asha@example.com\r\n"+
		"Subject: Hi\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n<p>body</p>", msg)
}
