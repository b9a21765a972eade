package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dori/tackle/internal/model"
)

// StateKey is the storage key the whole state is written under
const StateKey = "tackle-state"

// snapshotVersion is bumped whenever the encoded layout changes in a way
// older readers cannot handle.
const snapshotVersion = 1

type envelope struct {
	Version int             `json:"version"`
	State   *model.AppState `json:"state"`
}

// Encode serializes a state snapshot
func Encode(st *model.AppState) ([]byte, error) {
	b, err := json.Marshal(envelope{Version: snapshotVersion, State: st})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return b, nil
}

// Decode parses a snapshot written by Encode. Bare state documents without
// the version envelope are accepted as version 0; their durations are
// counted in milliseconds.
func Decode(b []byte) (*model.AppState, error) {
	var probe struct {
		Version *int            `json:"version"`
		State   json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}

	raw := []byte(probe.State)
	if probe.Version == nil {
		raw = b
	} else if *probe.Version > snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", *probe.Version, snapshotVersion)
	}

	var st model.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if probe.Version == nil {
		for i := range st.Lists {
			scaleLegacyDurations(st.Lists[i].Problems)
		}
	}
	normalize(&st)
	return &st, nil
}

// normalize fills in what older or hand-edited snapshots may lack: the
// inbox, settings defaults and non-nil child slices.
func normalize(st *model.AppState) {
	if _, _, ok := st.FindList(model.InboxID); !ok {
		inbox := model.DefaultState().Lists[0]
		st.Lists = append([]model.List{inbox}, st.Lists...)
	}
	def := model.DefaultSettings()
	if st.Settings.Layout == "" {
		st.Settings.Layout = def.Layout
	}
	if st.Settings.DefaultView == "" {
		st.Settings.DefaultView = def.DefaultView
	}
	for i := range st.Lists {
		st.Lists[i].Problems = normalizeProblems(st.Lists[i].Problems)
	}
}

func normalizeProblems(ps []model.Problem) []model.Problem {
	if ps == nil {
		return []model.Problem{}
	}
	for i := range ps {
		ps[i].Subproblems = normalizeProblems(ps[i].Subproblems)
		if ps[i].Status == "" {
			if ps[i].Completed {
				ps[i].Status = model.StatusSolved
			} else {
				ps[i].Status = model.StatusToSolve
			}
		}
	}
	return ps
}

// scaleLegacyDurations converts version 0 millisecond counts to durations.
func scaleLegacyDurations(ps []model.Problem) {
	for i := range ps {
		ps[i].TotalTime *= time.Millisecond
		for j := range ps[i].Sessions {
			ps[i].Sessions[j].Duration *= time.Millisecond
		}
		scaleLegacyDurations(ps[i].Subproblems)
	}
}
