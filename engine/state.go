package engine

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lixenwraith/runic/persist"
)

// frameState is the persisted record: elapsed time in milliseconds,
// accepted frame count, and the process start cycle
type frameState struct {
	timeMS float64
	frame  int64
	cycle  int64
}

// encodeFrameState composes the JSON record field by field
func encodeFrameState(st frameState) []byte {
	data := []byte(`{}`)
	data, _ = sjson.SetBytes(data, "time", st.timeMS)
	data, _ = sjson.SetBytes(data, "frame", st.frame)
	data, _ = sjson.SetBytes(data, "cycle", st.cycle)
	return data
}

// decodeFrameState reads the record fields; missing fields stay zero
func decodeFrameState(data []byte) frameState {
	return frameState{
		timeMS: gjson.GetBytes(data, "time").Float(),
		frame:  gjson.GetBytes(data, "frame").Int(),
		cycle:  gjson.GetBytes(data, "cycle").Int(),
	}
}

// saveFrameState persists the record, best-effort: storage failures
// are swallowed so a broken cache directory never interrupts a frame
func saveFrameState(store persist.Store, key string, st frameState) {
	if store == nil {
		return
	}
	_ = store.Store(key, encodeFrameState(st))
}

// restoreFrameState reads a prior record. Absent or unreadable records
// report ok=false and the caller falls back to the zero state.
func restoreFrameState(store persist.Store, key string) (frameState, bool) {
	if store == nil {
		return frameState{}, false
	}
	data, ok := store.Restore(key)
	if !ok || !gjson.ValidBytes(data) {
		return frameState{}, false
	}
	return decodeFrameState(data), true
}
