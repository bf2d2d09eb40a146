package trainer

import "context"

// Session size presets offered by the suggestion heuristic.
const (
	sizeShort  = 5
	sizeMedium = 10
	sizeLong   = 20
)

// SuggestSessionSize picks a session size from recent accuracy and the time
// of day. High recent accuracy with enough history earns a long session;
// late-evening study or a rough patch gets a short one. This is a
// convenience heuristic with no bearing on scheduling correctness, so any
// store failure silently falls back to the medium preset.
func (t *Trainer) SuggestSessionSize(ctx context.Context) int {
	now := t.now()
	hour := now.Hour()

	if t.store == nil {
		return sizeMedium
	}
	acc, total, err := t.store.RecentAccuracy(ctx, now.AddDate(0, 0, -7))
	if err != nil || total < 10 {
		return sizeMedium
	}

	late := hour >= 22 || hour < 6
	switch {
	case late:
		return sizeShort
	case acc < 0.6:
		return sizeShort
	case acc >= 0.85 && total >= 20:
		return sizeLong
	default:
		return sizeMedium
	}
}
