package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Jane_Doe", SanitizeName("Jane Doe"))
	assert.Equal(t, "acme-west", SanitizeName("acme-west"))
	assert.Equal(t, "Acme_Corp_", SanitizeName("Acme Corp."))
	assert.Equal(t, "___etc_passwd", SanitizeName("../etc/passwd"))
	assert.Equal(t, "", SanitizeName(""))
}
