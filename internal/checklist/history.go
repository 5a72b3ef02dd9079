package checklist

import "github.com/noah-isme/checklist-epi-api/internal/models"

// HistoryCapacity is the default number of snapshots kept.
const HistoryCapacity = 10

// PrependSnapshot returns history with snap first, truncated to capacity.
func PrependSnapshot(history []models.Snapshot, snap models.Snapshot, capacity int) []models.Snapshot {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	out := make([]models.Snapshot, 0, capacity)
	out = append(out, snap)
	for _, s := range history {
		if len(out) == capacity {
			break
		}
		out = append(out, s)
	}
	return out
}
