package session_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/arena"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/ruleset"
	"github.com/cory-johannsen/arena/internal/game/session"
	"github.com/cory-johannsen/arena/internal/testutil"
)

func TestArmory_Build(t *testing.T) {
	a := testutil.Armory(t, &testutil.ScriptedRoller{})
	f, msgs, err := a.Build(testutil.Hero(), combat.RolePlayer)
	require.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, "Warrior", f.Class().Name)
	assert.Equal(t, []string{"Hero equipped with weapon club", "Hero equipped with armor vest"}, msgs)
}

func TestArmory_RejectsUnknownNames(t *testing.T) {
	a := testutil.Armory(t, &testutil.ScriptedRoller{})
	cases := []struct {
		name   string
		mutate func(*session.Selection)
		want   error
	}{
		{"blank name", func(s *session.Selection) { s.Name = "  " }, session.ErrIncompleteSelection},
		{"class", func(s *session.Selection) { s.Class = "Wizard" }, ruleset.ErrUnknownClass},
		{"weapon", func(s *session.Selection) { s.Weapon = "bazooka" }, equipment.ErrUnknownWeapon},
		{"armor", func(s *session.Selection) { s.Armor = "" }, equipment.ErrUnknownArmor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := testutil.Hero()
			tc.mutate(&sel)
			f, _, err := a.Build(sel, combat.RolePlayer)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, f)
		})
	}
}

func TestSession_StartFightRequiresBothSelections(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	s := m.Create()

	assert.ErrorIs(t, s.StartFight(), session.ErrIncompleteSelection)

	_, err := s.ChooseHero(testutil.Hero())
	require.NoError(t, err)
	assert.ErrorIs(t, s.StartFight(), session.ErrIncompleteSelection)

	_, err = s.ChooseOpponent(testutil.Villain())
	require.NoError(t, err)
	require.NoError(t, s.StartFight())
	assert.Equal(t, arena.StateRunning, s.Controller().State())
	assert.Len(t, s.ResultLines(), 4)
}

func TestSession_FailedChoiceKeepsPrevious(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	s := m.Create()
	_, err := s.ChooseHero(testutil.Hero())
	require.NoError(t, err)

	bad := testutil.Hero()
	bad.Weapon = "nope"
	_, err = s.ChooseHero(bad)
	require.Error(t, err)

	got, ok := s.Hero()
	require.True(t, ok)
	assert.Equal(t, "club", got.Weapon)
}

func TestSession_ActionsRecordResult(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	s := m.Create()
	_, _ = s.ChooseHero(testutil.Hero())
	_, _ = s.ChooseOpponent(testutil.Villain())
	require.NoError(t, s.StartFight())

	r := s.Hit()
	assert.Equal(t, r, s.LastResult())
	assert.Len(t, s.ResultLines(), 2)

	r = s.PassTurn()
	assert.Equal(t, r, s.LastResult())

	r = s.UseSkill()
	assert.Equal(t, r, s.LastResult())

	s.EndFight()
	assert.Empty(t, s.LastResult())
	assert.Nil(t, s.ResultLines())
}

func TestSession_RestartBuildsFreshFighters(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	s := m.Create()
	_, _ = s.ChooseHero(testutil.Hero())
	_, _ = s.ChooseOpponent(testutil.Villain())
	require.NoError(t, s.StartFight())
	s.Hit()
	first := s.Controller().Player()

	require.NoError(t, s.StartFight())
	second := s.Controller().Player()
	assert.NotSame(t, first, second)
	assert.Equal(t, second.Class().MaxHealth, second.CurrentHP)
}

func TestManager_GetAndRemove(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	s := m.Create()
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(s.ID.String())
	require.NoError(t, err)
	assert.Same(t, s, got)

	m.Remove(s.ID)
	assert.Equal(t, 0, m.Count())
	_, err = m.Get(s.ID.String())
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	m.Remove(uuid.New())
}

func TestManager_GetMalformed(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	_, err := m.Get("not-a-uuid")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_SweepEvictsIdleSessions(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	stale := m.Create()
	time.Sleep(5 * time.Millisecond)
	fresh := m.Create()
	_, err := fresh.ChooseHero(testutil.Hero())
	require.NoError(t, err)

	assert.Zero(t, m.Sweep(time.Now(), time.Hour), "nothing is idle yet")
	assert.Equal(t, 2, m.Count())

	now := fresh.LastSeen()
	idle := now.Sub(stale.LastSeen()) / 2
	assert.Equal(t, 1, m.Sweep(now, idle))
	_, err = m.Get(stale.ID.String())
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = m.Get(fresh.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep(time.Now().Add(2*time.Hour), time.Hour))
	assert.Zero(t, m.Count())
}

func TestManager_GetRefreshesLastSeen(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	s := m.Create()
	before := s.LastSeen()
	time.Sleep(2 * time.Millisecond)
	_, err := m.Get(s.ID.String())
	require.NoError(t, err)
	assert.True(t, s.LastSeen().After(before))
}

func TestManager_SweepPrecondition(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	assert.Panics(t, func() { m.Sweep(time.Now(), 0) })
}

func TestSweeper_EvictsUntilStopped(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	m.Create()
	sw := session.NewSweeper(m, time.Millisecond, 5*time.Millisecond, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() { done <- sw.Start() }()
	assert.Eventually(t, func() bool { return m.Count() == 0 }, 2*time.Second, 5*time.Millisecond)

	sw.Stop()
	sw.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestNewSweeper_Preconditions(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	log := zaptest.NewLogger(t)
	assert.Panics(t, func() { session.NewSweeper(nil, time.Minute, time.Minute, log) })
	assert.Panics(t, func() { session.NewSweeper(m, 0, time.Minute, log) })
	assert.Panics(t, func() { session.NewSweeper(m, time.Minute, 0, log) })
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	a, b := m.Create(), m.Create()
	_, _ = a.ChooseHero(testutil.Hero())
	_, _ = a.ChooseOpponent(testutil.Villain())
	require.NoError(t, a.StartFight())

	assert.True(t, a.Controller().Running())
	assert.False(t, b.Controller().Running())
	_, ok := b.Hero()
	assert.False(t, ok)
}

func TestManager_ConcurrentCreateRemove(t *testing.T) {
	m := testutil.Manager(t, &testutil.ScriptedRoller{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := m.Create()
			_, _ = s.ChooseHero(session.Selection{Name: fmt.Sprintf("h%d", i), Class: "Thief", Weapon: "knife", Armor: "vest"})
			m.Remove(s.ID)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, m.Count())
}

func TestNewManager_Preconditions(t *testing.T) {
	a := testutil.Armory(t, &testutil.ScriptedRoller{})
	assert.Panics(t, func() { session.NewManager(nil, 1, nil) })
	assert.Panics(t, func() { session.NewManager(a, 0, zaptest.NewLogger(t)) })
}

// TestProperty_CreateThenGet verifies every created session is retrievable
// until removed.
func TestProperty_CreateThenGet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := testutil.Manager(t, &testutil.ScriptedRoller{})
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		ids := make([]uuid.UUID, 0, n)
		for i := 0; i < n; i++ {
			ids = append(ids, m.Create().ID)
		}
		removeIdx := rapid.IntRange(0, n-1).Draw(rt, "remove")
		m.Remove(ids[removeIdx])
		for i, id := range ids {
			_, err := m.Get(id.String())
			if i == removeIdx {
				require.ErrorIs(rt, err, session.ErrSessionNotFound)
			} else {
				require.NoError(rt, err)
			}
		}
		require.Equal(rt, n-1, m.Count())
	})
}
