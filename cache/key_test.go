package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyStrings(t *testing.T) {
	assert.Equal(t, "products", List("products", nil).String())
	assert.Equal(t, "product:5", Item("product", "5").String())
	assert.Equal(t, "product:5", ItemID("product", 5).String())
}

func TestListKeyFilterFingerprint(t *testing.T) {
	type filter struct {
		Active bool   `json:"active"`
		Name   string `json:"name"`
	}

	a := List("products", filter{Active: true, Name: "chair"})
	b := List("products", filter{Active: true, Name: "chair"})
	c := List("products", filter{Active: false, Name: "chair"})

	// Equal filters share an entry; different filters do not.
	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.String(), c.String())
	assert.NotEqual(t, List("products", nil).String(), a.String())
}
