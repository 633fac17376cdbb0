package pagination

// Page wraps one page of a bounded, ordered query together with the
// totals needed by clients to render paging controls.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func New[T any](data []T, total int64, page, limit int) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
}

// Map rebuilds the page with every element converted, keeping the envelope.
func Map[T, D any](p Page[T], mapper func(T) D) Page[D] {
	data := make([]D, 0, len(p.Data))
	for _, item := range p.Data {
		data = append(data, mapper(item))
	}
	return Page[D]{
		Data:       data,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func totalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
