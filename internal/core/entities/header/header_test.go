package header_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/toolbelt/internal/core/entities/header"
)

func TestList_AddGet(t *testing.T) {
	var l header.List
	l.Add("Set-Cookie", "a=1")
	l.Add("Content-Type", "text/plain")
	l.Add("set-cookie", "b=2")

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "a=1", l.Get("SET-COOKIE"))
	assert.Equal(t, []string{"a=1", "b=2"}, l.Values("Set-Cookie"))
	assert.Equal(t, "", l.Get("X-Missing"))
	assert.Nil(t, l.Values("X-Missing"))
}

func TestFromHTTP(t *testing.T) {
	h := http.Header{}
	h.Add("X-B", "2")
	h.Add("X-A", "1")
	h.Add("X-B", "3")

	got := header.FromHTTP(h)
	assert.Equal(t, header.List{
		{Name: "X-A", Value: "1"},
		{Name: "X-B", Value: "2"},
		{Name: "X-B", Value: "3"},
	}, got)

	assert.Empty(t, header.FromHTTP(http.Header{}))
}
