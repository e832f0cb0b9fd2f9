package assets

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
)

// AssetFilter is the user-facing filter set shared by every asset listing.
type AssetFilter struct {
	Categories    []domain.Category
	Statuses      []domain.Status
	Title         string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	HasFile       *bool
}

// FilterErrors maps a query parameter to its validation messages.
type FilterErrors map[string][]string

func (fe FilterErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FilterErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

const dateLayout = "2006-01-02"

// ParseAssetFilter reads filter params from a query string. A non-empty
// FilterErrors means the caller must return an empty listing.
func ParseAssetFilter(q url.Values) (AssetFilter, FilterErrors) {
	var f AssetFilter
	errs := FilterErrors{}

	for _, raw := range splitMulti(q["category"]) {
		c, ok := domain.ParseCategory(raw)
		if !ok {
			errs.add("category", "Select a valid choice. "+raw+" is not one of the available choices.")
			continue
		}
		f.Categories = append(f.Categories, c)
	}
	for _, raw := range splitMulti(q["status"]) {
		s, ok := domain.ParseStatus(raw)
		if !ok {
			errs.add("status", "Select a valid choice. "+raw+" is not one of the available choices.")
			continue
		}
		f.Statuses = append(f.Statuses, s)
	}

	f.Title = strings.TrimSpace(q.Get("title"))

	if raw := strings.TrimSpace(q.Get("created_after")); raw != "" {
		t, _, ok := parseFilterTime(raw)
		if !ok {
			errs.add("created_after", "Enter a valid date/time.")
		} else {
			f.CreatedAfter = &t
		}
	}
	if raw := strings.TrimSpace(q.Get("created_before")); raw != "" {
		t, dateOnly, ok := parseFilterTime(raw)
		switch {
		case !ok:
			errs.add("created_before", "Enter a valid date/time.")
		case dateOnly:
			// a bare date includes the whole day
			end := t.AddDate(0, 0, 1)
			f.CreatedBefore = &end
		default:
			f.CreatedBefore = &t
		}
	}

	if raw := strings.ToLower(strings.TrimSpace(q.Get("has_file"))); raw != "" {
		switch raw {
		case "true", "1", "yes":
			v := true
			f.HasFile = &v
		case "false", "0", "no":
			v := false
			f.HasFile = &v
		default:
			errs.add("has_file", "Enter a valid boolean.")
		}
	}

	if len(errs) == 0 {
		return f, nil
	}
	return f, errs
}

func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseFilterTime(raw string) (time.Time, bool, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, true
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), true, true
	}
	return time.Time{}, false, false
}

// Apply adds the filter predicates to q.
func (f AssetFilter) Apply(q *gorm.DB) *gorm.DB {
	if len(f.Categories) > 0 {
		q = q.Where("asset.category IN ?", f.Categories)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("asset.status IN ?", f.Statuses)
	}
	if f.Title != "" {
		q = q.Where("LOWER(asset.title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(f.Title))+"%")
	}
	if f.CreatedAfter != nil {
		q = q.Where("asset.created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		q = q.Where("asset.created_at < ?", *f.CreatedBefore)
	}
	if f.HasFile != nil {
		if *f.HasFile {
			q = q.Where("asset.uploaded_file_id IS NOT NULL")
		} else {
			q = q.Where("asset.uploaded_file_id IS NULL")
		}
	}
	return q
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
