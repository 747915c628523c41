package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) *LoginGuard {
	t.Helper()
	guard, err := NewLoginGuard(filepath.Join(t.TempDir(), "guard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { guard.Close() })
	return guard
}

func TestLoginGuardLockout(t *testing.T) {
	guard := newTestGuard(t)
	current := time.Now()
	guard.now = func() time.Time { return current }

	for i := 0; i < maxLoginAttempts; i++ {
		canAttempt, _, err := guard.Check("a@b.com")
		require.NoError(t, err)
		assert.True(t, canAttempt, "attempt %d should be allowed", i+1)
		require.NoError(t, guard.Record("a@b.com"))
	}

	canAttempt, remaining, err := guard.Check("a@b.com")
	require.NoError(t, err)
	assert.False(t, canAttempt)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, lockoutDuration)

	// Another identifier is unaffected.
	canAttempt, _, err = guard.Check("c@d.com")
	require.NoError(t, err)
	assert.True(t, canAttempt)

	// Once the oldest attempt leaves the window the identifier recovers.
	current = current.Add(lockoutDuration + time.Second)
	canAttempt, remaining, err = guard.Check("a@b.com")
	require.NoError(t, err)
	assert.True(t, canAttempt)
	assert.Equal(t, time.Duration(0), remaining)
}

func TestLoginGuardResetClearsHistory(t *testing.T) {
	guard := newTestGuard(t)
	current := time.Now()
	guard.now = func() time.Time { return current }

	for i := 0; i < maxLoginAttempts; i++ {
		require.NoError(t, guard.Record("a@b.com"))
	}
	canAttempt, _, err := guard.Check("a@b.com")
	require.NoError(t, err)
	require.False(t, canAttempt)

	require.NoError(t, guard.Reset("a@b.com"))
	canAttempt, _, err = guard.Check("a@b.com")
	require.NoError(t, err)
	assert.True(t, canAttempt)
}

func TestLoginGuardPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guard.db")
	guard, err := NewLoginGuard(path)
	require.NoError(t, err)
	for i := 0; i < maxLoginAttempts; i++ {
		require.NoError(t, guard.Record("a@b.com"))
	}
	require.NoError(t, guard.Close())

	reopened, err := NewLoginGuard(path)
	require.NoError(t, err)
	defer reopened.Close()

	canAttempt, _, err := reopened.Check("a@b.com")
	require.NoError(t, err)
	assert.False(t, canAttempt, "lockout must survive a restart")
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("a@b.com"))
	assert.True(t, ValidateEmail("prenom.nom@asso.fr"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("a b@c.com"))
	assert.False(t, ValidateEmail("a@b"))
}
