package voyager

import (
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore(t.TempDir())

	in := []*http.Cookie{
		{Name: "li_at", Value: "token", Domain: ".linkedin.com", Path: "/"},
		{Name: "JSESSIONID", Value: `"ajax:123"`, Domain: ".linkedin.com", Path: "/"},
	}
	require.NoError(t, store.Save("user@example.com", in))

	out, err := store.Load("user@example.com")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "li_at", out[0].Name)
	assert.Equal(t, "token", out[0].Value)
	assert.Equal(t, `"ajax:123"`, out[1].Value)
}

func TestCookieStore_LoadMissingIsNotAnError(t *testing.T) {
	store := NewCookieStore(t.TempDir())
	out, err := store.Load("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCookieStore_Delete(t *testing.T) {
	store := NewCookieStore(t.TempDir())
	require.NoError(t, store.Save("user@example.com", []*http.Cookie{{Name: "li_at", Value: "x"}}))

	removed, err := store.Delete("user@example.com")
	require.NoError(t, err)
	assert.True(t, removed)

	_, statErr := os.Stat(store.Path("user@example.com"))
	assert.True(t, os.IsNotExist(statErr))

	// Second delete finds nothing and reports that without failing.
	removed, err = store.Delete("user@example.com")
	require.NoError(t, err)
	assert.False(t, removed)
}
