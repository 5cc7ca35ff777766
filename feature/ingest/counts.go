package ingest

import "go.uber.org/zap"

// Counts summarizes one reconciliation pass. Every upstream record lands in
// exactly one bucket.
type Counts struct {
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

// Total is the number of records processed.
func (c Counts) Total() int {
	return c.Added + c.Updated + c.Unchanged + c.Skipped
}

// Merge accumulates another pass into this one.
func (c *Counts) Merge(other Counts) {
	c.Added += other.Added
	c.Updated += other.Updated
	c.Unchanged += other.Unchanged
	c.Skipped += other.Skipped
}

// Fields renders the counts as structured log fields.
func (c Counts) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("added", c.Added),
		zap.Int("updated", c.Updated),
		zap.Int("unchanged", c.Unchanged),
		zap.Int("skipped", c.Skipped),
	}
}
