package record

import "context"

// Source supplies raw portfolio rows. Freshness is the caller's concern: a
// refresh re-reads the source and rebuilds the index wholesale.
type Source interface {
	ListRecords(ctx context.Context) ([]Raw, error)
}

// StaticSource serves a fixed record set. It backs the service when no
// database is configured or reachable at startup, so the API stays up with
// placeholder content instead of refusing to start.
type StaticSource struct {
	rows []Raw
}

// NewStaticSource creates a source over a fixed row set. With no rows it
// serves the built-in sample.
func NewStaticSource(rows ...Raw) *StaticSource {
	if len(rows) == 0 {
		rows = sampleRows()
	}
	return &StaticSource{rows: rows}
}

// ListRecords returns the fixed row set.
func (s *StaticSource) ListRecords(ctx context.Context) ([]Raw, error) {
	out := make([]Raw, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func sampleRows() []Raw {
	return []Raw{
		{
			Category: CategoryProject,
			SourceID: "sample_1",
			Title:    "AI-Powered Portfolio",
			Body:     "Built with Next.js 15, React 19, and Three.js for immersive 3D experiences.",
			Tags:     []string{"Next.js", "React", "Three.js", "TypeScript", "3D", "Animation"},
		},
	}
}
