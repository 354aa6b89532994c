package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/obonelli/the-witcher-trial/internal/runner"
	"github.com/obonelli/the-witcher-trial/internal/storage"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	at := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	for i, r := range []struct {
		mode   trial.Mode
		player string
		score  int
	}{
		{trial.ModeLive, "geralt", 420},
		{trial.ModeLive, "ciri", 910},
		{trial.ModeClassic, "yen", 77},
	} {
		_, err := store.SaveResult(runner.Outcome{
			Player: r.player,
			Result: trial.Result{
				Mode:         r.mode,
				Score:        r.score,
				Accuracy:     0.5,
				Level:        3,
				PlayedTotal:  10,
				CorrectTotal: 5,
				EndReason:    trial.EndEnergy,
				Timestamp:    at.Add(time.Duration(i) * time.Minute),
			},
			Replay: trial.Replay{Mode: r.mode},
		})
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
	return store
}

func TestScoreboardLoadsModeTabs(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 120, 40)

	if len(m.runs) != 2 || m.runs[0].Player != "ciri" {
		t.Fatalf("live runs = %+v", m.runs)
	}
	out := plain(m.View())
	for _, want := range []string{"ciri", "910", "50%", "energy"} {
		if !strings.Contains(out, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, out)
		}
	}

	next, _ := m.Update(tabKey)
	m = next.(ScoreboardModel)
	if len(m.runs) != 1 || m.runs[0].Player != "yen" {
		t.Errorf("classic runs = %+v", m.runs)
	}

	// Tab wraps back to the live tab.
	next, _ = m.Update(tabKey)
	m = next.(ScoreboardModel)
	if m.modeCursor != 0 {
		t.Errorf("modeCursor = %d after wrapping, expected 0", m.modeCursor)
	}
}

func TestScoreboardNarrowLayout(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 30)
	if m.showSidebar {
		t.Fatal("sidebar shown on a narrow terminal")
	}
	if out := plain(m.View()); !strings.Contains(out, "No runs recorded yet") {
		t.Errorf("empty scoreboard message missing:\n%s", out)
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	m := NewMenuModel(seededStore(t), testConfig())

	if m.items[0].Best != 910 || m.items[1].Best != 77 {
		t.Errorf("best scores = %d, %d; expected 910, 77", m.items[0].Best, m.items[1].Best)
	}
	if out := plain(m.View()); !strings.Contains(out, "best 910") {
		t.Errorf("menu missing best score:\n%s", out)
	}
}
