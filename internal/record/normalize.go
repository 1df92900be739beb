package record

import "fmt"

// Normalize converts raw source rows into uniform Records. It is a pure
// transform: missing optional fields become empty values and no row is ever
// dropped.
func Normalize(raws []Raw) []Record {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalizeOne(raw))
	}
	return records
}

func normalizeOne(raw Raw) Record {
	rec := Record{
		ID:       fmt.Sprintf("%s_%s", raw.Category, raw.SourceID),
		Category: raw.Category,
		Title:    raw.Title,
		Body:     raw.Body,
		Tags:     raw.Tags,
	}

	if len(raw.Extra) > 0 {
		rec.Attributes = make(map[string]any, len(raw.Extra))
		for k, v := range raw.Extra {
			rec.Attributes[k] = v
		}
	}

	switch raw.Category {
	case CategorySkill:
		if rec.Tags == nil {
			if cat, ok := stringExtra(raw, "category"); ok {
				rec.Tags = []string{cat}
			}
		}
	case CategoryService:
		if rec.Tags == nil {
			rec.Tags = []string{"service"}
		}
	case CategoryTestimonial:
		if author, ok := stringExtra(raw, "author"); ok {
			rec.Title = fmt.Sprintf("Testimonial from %s", author)
		}
		if rec.Tags == nil {
			rec.Tags = []string{"testimonial"}
			if role, ok := stringExtra(raw, "role"); ok {
				rec.Tags = append(rec.Tags, role)
			}
		}
	case CategoryAchievement:
		if rec.Tags == nil {
			rec.Tags = []string{"achievement"}
			if cat, ok := stringExtra(raw, "category"); ok {
				rec.Tags = append(rec.Tags, cat)
			}
		}
	}

	if rec.Tags == nil {
		rec.Tags = []string{}
	}

	return rec
}

func stringExtra(raw Raw, key string) (string, bool) {
	v, ok := raw.Extra[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
