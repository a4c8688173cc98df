package trivia

import (
	"cmp"
	"slices"
	"strings"
)

// PageRequest describes which slice of the question collection to return.
type PageRequest struct {
	Page       int
	PageSize   int
	CategoryID *int64
	// Search, when non-empty, selects every question whose text contains it
	// (case-insensitive). Search results are not paginated.
	Search string
}

// PageResult is the selected slice plus the size of the filtered working set.
type PageResult struct {
	Items []Question
	Total int
}

// SelectPage filters all by the request, orders the working set by id and
// slices out the requested 1-indexed page. A page starting at or past the end
// of the working set is ErrNotFound, including when the working set is empty.
func SelectPage(all []Question, req PageRequest) (PageResult, error) {
	if req.Search != "" {
		needle := strings.ToLower(req.Search)
		matches := filter(all, func(q Question) bool {
			return strings.Contains(strings.ToLower(q.Question), needle)
		})
		if len(matches) == 0 {
			return PageResult{}, notFound("no questions match %q", req.Search)
		}
		return PageResult{Items: matches, Total: len(matches)}, nil
	}

	if req.Page < 1 {
		return PageResult{}, badRequest("page must be a positive integer, got %d", req.Page)
	}
	if req.PageSize < 1 {
		return PageResult{}, badRequest("page size must be positive, got %d", req.PageSize)
	}

	working := filter(all, func(q Question) bool {
		return req.CategoryID == nil || q.Category == *req.CategoryID
	})

	total := len(working)
	pages := (total + req.PageSize - 1) / req.PageSize
	if req.Page > pages {
		return PageResult{}, notFound("page %d is out of range (%d pages)", req.Page, pages)
	}

	start := (req.Page - 1) * req.PageSize
	end := min(start+req.PageSize, total)
	return PageResult{Items: working[start:end], Total: total}, nil
}

// filter returns the matching questions ordered by id, leaving all untouched.
func filter(all []Question, keep func(Question) bool) []Question {
	out := make([]Question, 0, len(all))
	for _, q := range all {
		if keep(q) {
			out = append(out, q)
		}
	}
	sortByID(out)
	return out
}

func sortByID(qs []Question) {
	slices.SortStableFunc(qs, func(a, b Question) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
