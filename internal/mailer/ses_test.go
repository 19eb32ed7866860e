package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountCreatedBody(t *testing.T) {
	html, text := AccountCreatedBody("Sara Ahmed", "sara@example.com", "starter-pass", "Manager")

	assert.Contains(t, html, "Dear Sara Ahmed")
	assert.Contains(t, html, "sara@example.com")
	assert.Contains(t, html, "starter-pass")
	assert.Contains(t, html, "The Risers Consultancy Team")

	assert.Contains(t, text, "Dear Sara Ahmed")
	assert.Contains(t, text, "sara@example.com")
	assert.Contains(t, text, "starter-pass")
}
