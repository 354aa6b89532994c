package trial

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEvent is returned when a record names no known event.
var ErrUnknownEvent = errors.New("trial: unknown event kind")

// Record is the flat, JSON-encodable form of an Event.
type Record struct {
	Kind      EventKind `json:"kind"`
	OK        bool      `json:"ok,omitempty"`
	Index     int       `json:"idx,omitempty"`
	Value     float64   `json:"value,omitempty"` // EnergySet value or EnergyDelta delta
	Paused    bool      `json:"paused,omitempty"`
	Glyph     Glyph     `json:"glyph,omitempty"`
	ElapsedMs int       `json:"elapsedMs,omitempty"`
}

// Encode converts an event to its record.
func Encode(e Event) (Record, error) {
	switch ev := e.(type) {
	case Start, SeqShown, RoundSuccess, TogglePaused, Retry, GameOver, Timeout:
		return Record{Kind: ev.Kind()}, nil
	case LiveHit:
		return Record{Kind: KindLiveHit, OK: ev.OK, Index: ev.Index}, nil
	case LiveMiss:
		return Record{Kind: KindLiveMiss, Index: ev.Index}, nil
	case EnergySet:
		return Record{Kind: KindEnergySet, Value: ev.Value}, nil
	case EnergyDelta:
		return Record{Kind: KindEnergyDelta, Value: ev.Delta}, nil
	case SetPaused:
		return Record{Kind: KindSetPaused, Paused: ev.Value}, nil
	case Input:
		return Record{Kind: KindInput, Glyph: ev.Glyph, ElapsedMs: ev.ElapsedMs}, nil
	default:
		return Record{}, ErrUnknownEvent
	}
}

// Decode converts a record back to its event.
func (r Record) Decode() (Event, error) {
	switch r.Kind {
	case KindStart:
		return Start{}, nil
	case KindLiveHit:
		return LiveHit{OK: r.OK, Index: r.Index}, nil
	case KindLiveMiss:
		return LiveMiss{Index: r.Index}, nil
	case KindSeqShown:
		return SeqShown{}, nil
	case KindRoundSuccess:
		return RoundSuccess{}, nil
	case KindEnergySet:
		return EnergySet{Value: r.Value}, nil
	case KindEnergyDelta:
		return EnergyDelta{Delta: r.Value}, nil
	case KindSetPaused:
		return SetPaused{Value: r.Paused}, nil
	case KindTogglePaused:
		return TogglePaused{}, nil
	case KindRetry:
		return Retry{}, nil
	case KindGameOver:
		return GameOver{}, nil
	case KindInput:
		return Input{Glyph: r.Glyph, ElapsedMs: r.ElapsedMs}, nil
	case KindTimeout:
		return Timeout{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, r.Kind)
	}
}

// Replay is the complete event log of one run.
// Re-running it through a Machine with the same tuning and roster
// reproduces the final state exactly.
type Replay struct {
	Mode    Mode     `json:"mode"`
	Seed    int64    `json:"seed"`
	Records []Record `json:"events"`
}

// EncodeReplay serializes a replay.
func EncodeReplay(rp Replay) ([]byte, error) {
	data, err := json.Marshal(rp)
	if err != nil {
		return nil, fmt.Errorf("trial: encode replay: %w", err)
	}
	return data, nil
}

// DecodeReplay parses a serialized replay.
func DecodeReplay(data []byte) (Replay, error) {
	var rp Replay
	if err := json.Unmarshal(data, &rp); err != nil {
		return Replay{}, fmt.Errorf("trial: decode replay: %w", err)
	}
	return rp, nil
}

// Run replays rp from the initial state and returns the final state.
func (m *Machine) Run(rp Replay) (State, error) {
	s := m.InitialState(rp.Mode, rp.Seed)
	for i, rec := range rp.Records {
		e, err := rec.Decode()
		if err != nil {
			return s, fmt.Errorf("trial: replay event %d: %w", i, err)
		}
		s = m.Transition(s, e)
	}
	return s, nil
}

// Recorder accumulates the events of the current run.
type Recorder struct {
	replay Replay
}

// NewRecorder starts recording a run.
func NewRecorder(mode Mode, seed int64) *Recorder {
	r := &Recorder{}
	r.Reset(mode, seed)
	return r
}

// Reset discards recorded events and starts a new run.
func (r *Recorder) Reset(mode Mode, seed int64) {
	r.replay = Replay{Mode: mode, Seed: seed}
}

// Record appends e. Events outside the closed set are dropped, since the
// transition function ignores them anyway.
func (r *Recorder) Record(e Event) {
	rec, err := Encode(e)
	if err != nil {
		return
	}
	r.replay.Records = append(r.replay.Records, rec)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.replay.Records)
}

// Replay returns a copy of the recording.
func (r *Recorder) Replay() Replay {
	rp := r.replay
	rp.Records = append([]Record(nil), r.replay.Records...)
	return rp
}
