package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	st := NewStore(time.Minute)

	id, sess := st.Create()
	require.NotEmpty(t, id)
	require.NotNil(t, sess)

	got, ok := st.Get(id)
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestStore_UnknownID(t *testing.T) {
	st := NewStore(time.Minute)

	_, ok := st.Get("no-such-session")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	st := NewStore(20 * time.Millisecond)

	id, sess := st.Create()
	sess.SetIdentity("alice@example.com")

	time.Sleep(50 * time.Millisecond)

	_, ok := st.Get(id)
	assert.False(t, ok, "expired session must not be returned")
}

func TestStore_Delete(t *testing.T) {
	st := NewStore(time.Minute)

	id, sess := st.Create()
	sess.SetIdentity("alice@example.com")
	st.Delete(id)

	_, ok := st.Get(id)
	assert.False(t, ok)
}

func TestSession_IdentityDefaultsAnonymous(t *testing.T) {
	st := NewStore(time.Minute)

	_, sess := st.Create()
	assert.Empty(t, sess.Identity(), "a fresh session must not be authenticated")

	sess.SetIdentity("alice@example.com")
	assert.Equal(t, "alice@example.com", sess.Identity())
}

func TestSession_FlashReadOnce(t *testing.T) {
	st := NewStore(time.Minute)
	_, sess := st.Create()

	sess.PushFlash("error", "something went wrong")

	text, ok := sess.PopFlash("error")
	require.True(t, ok)
	assert.Equal(t, "something went wrong", text)

	_, ok = sess.PopFlash("error")
	assert.False(t, ok, "flash values are read-once")
}

func TestSession_FlashReplaces(t *testing.T) {
	st := NewStore(time.Minute)
	_, sess := st.Create()

	sess.PushFlash("email", "first@example.com")
	sess.PushFlash("email", "second@example.com")

	text, ok := sess.PopFlash("email")
	require.True(t, ok)
	assert.Equal(t, "second@example.com", text)
}
