package assetview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleFields(t *testing.T) {
	laptop := VisibleFields("Laptop")
	assert.True(t, laptop["name"])
	assert.True(t, laptop["os_version"])
	assert.True(t, laptop["cpu_type"])
	assert.False(t, laptop["ilo_ip"])

	server := VisibleFields("Server")
	assert.True(t, server["ilo_ip"])
	assert.True(t, server["physical_virtual"])

	// unknown category falls back to the base field set
	other := VisibleFields("Something Else")
	assert.True(t, other["name"])
	assert.False(t, other["os_version"])
}
