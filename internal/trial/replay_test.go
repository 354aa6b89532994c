package trial

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRecordRoundTrip(t *testing.T) {
	events := []Event{
		Start{},
		LiveHit{OK: true, Index: 2},
		LiveHit{OK: false, Index: 0},
		LiveMiss{Index: 1},
		SeqShown{},
		RoundSuccess{},
		EnergySet{Value: 0.75},
		EnergyDelta{Delta: -0.012},
		SetPaused{Value: true},
		TogglePaused{},
		Retry{},
		GameOver{},
		Input{Glyph: "ward", ElapsedMs: 1234},
		Timeout{},
	}

	for _, e := range events {
		rec, err := Encode(e)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", e, err)
		}
		if rec.Kind != e.Kind() {
			t.Errorf("record kind = %q, expected %q", rec.Kind, e.Kind())
		}
		back, err := rec.Decode()
		if err != nil {
			t.Fatalf("Decode(%+v): %v", rec, err)
		}
		if !reflect.DeepEqual(back, e) {
			t.Errorf("round trip of %#v produced %#v", e, back)
		}
	}
}

func TestUnknownEventKind(t *testing.T) {
	if _, err := Encode(bogusEvent{}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("Encode(bogus) error = %v, expected ErrUnknownEvent", err)
	}
	if _, err := (Record{Kind: "teleport"}).Decode(); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("Decode(teleport) error = %v, expected ErrUnknownEvent", err)
	}
}

func TestReplayReproducesRun(t *testing.T) {
	m := newTestMachine()
	rec := NewRecorder(ModeLive, 777)

	s := m.InitialState(ModeLive, 777)
	step := func(e Event) {
		rec.Record(e)
		s = m.Transition(s, e)
	}

	step(EnergySet{Value: 1})
	step(Start{})
	for round := 0; round < 5; round++ {
		for i := range s.Sequence {
			if i%3 == 2 {
				step(LiveMiss{Index: i})
				continue
			}
			step(LiveHit{OK: true, Index: i})
			step(EnergyDelta{Delta: -0.004})
		}
		step(SeqShown{})
		step(RoundSuccess{})
	}
	step(GameOver{})

	data, err := EncodeReplay(rec.Replay())
	if err != nil {
		t.Fatalf("EncodeReplay: %v", err)
	}
	rp, err := DecodeReplay(data)
	if err != nil {
		t.Fatalf("DecodeReplay: %v", err)
	}
	if len(rp.Records) != rec.Len() {
		t.Fatalf("decoded %d records, expected %d", len(rp.Records), rec.Len())
	}

	got, err := m.Run(rp)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("replayed state differs:\ngot:  %+v\nwant: %+v", got, s)
	}
	if got.Score == 0 || got.Phase != PhaseGameOver {
		t.Errorf("unexpected replay outcome: score=%d phase=%s", got.Score, got.Phase)
	}
}

func TestReplayJSONShape(t *testing.T) {
	rp := Replay{
		Mode: ModeClassic,
		Seed: 9,
		Records: []Record{
			{Kind: KindStart},
			{Kind: KindInput, Glyph: "void", ElapsedMs: 40},
		},
	}
	data, err := EncodeReplay(rp)
	if err != nil {
		t.Fatalf("EncodeReplay: %v", err)
	}

	want := `{"mode":"classic","seed":9,"events":[{"kind":"start"},{"kind":"input","glyph":"void","elapsedMs":40}]}`
	if string(data) != want {
		t.Errorf("encoded replay = %s\nexpected         %s", data, want)
	}
}

func TestRunRejectsBadRecord(t *testing.T) {
	m := newTestMachine()
	rp := Replay{
		Mode:    ModeLive,
		Seed:    1,
		Records: []Record{{Kind: KindStart}, {Kind: "warp"}},
	}

	s, err := m.Run(rp)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("Run error = %v, expected ErrUnknownEvent", err)
	}
	if !strings.Contains(err.Error(), "event 1") {
		t.Errorf("error %q does not name the failing record", err)
	}
	// State up to the bad record is returned.
	if s.Phase != PhaseShowingSequence {
		t.Errorf("phase = %s, expected %s", s.Phase, PhaseShowingSequence)
	}
}

func TestDecodeReplayInvalid(t *testing.T) {
	if _, err := DecodeReplay([]byte("{not json")); err == nil {
		t.Error("expected an error for malformed replay")
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(ModeLive, 5)
	rec.Record(Start{})
	rec.Record(bogusEvent{})
	rec.Record(LiveHit{OK: true, Index: 0})

	if rec.Len() != 2 {
		t.Errorf("Len = %d, expected 2 (unknown events dropped)", rec.Len())
	}

	snap := rec.Replay()
	rec.Record(SeqShown{})
	if len(snap.Records) != 2 {
		t.Error("Replay() result aliases the recorder")
	}

	rec.Reset(ModeClassic, 6)
	if rec.Len() != 0 {
		t.Errorf("Len after Reset = %d, expected 0", rec.Len())
	}
	if rp := rec.Replay(); rp.Mode != ModeClassic || rp.Seed != 6 {
		t.Errorf("Reset did not update header: %+v", rp)
	}
}
