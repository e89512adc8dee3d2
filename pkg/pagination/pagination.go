package pagination

// Params selects one page of a list. A zero PageSize means everything.
type Params struct {
	Page     int
	PageSize int
}

// Meta describes the page returned to a client
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func (p Params) bounds(total int) (start, end int) {
	if p.PageSize == 0 {
		return 0, total
	}

	start = min((p.Page-1)*p.PageSize, total)
	end = min(start+p.PageSize, total)
	return start, end
}

func (p Params) meta(total int) Meta {
	pages := 0
	switch {
	case p.PageSize > 0:
		pages = (total + p.PageSize - 1) / p.PageSize
	case total > 0:
		pages = 1
	}

	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Apply returns the requested page of items
func Apply[T any](p Params, items []T) ([]T, Meta) {
	start, end := p.bounds(len(items))
	return items[start:end], p.meta(len(items))
}
