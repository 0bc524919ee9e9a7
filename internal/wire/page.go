package wire

import "realty-backoffice/internal/core/listing"

// PageDTO - конверт страницы. Number считается с нуля.
type PageDTO[D any] struct {
	Content       []D `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
	Size          int `json:"size"`
}

// NewPageDTO упаковывает результат списка
func NewPageDTO[T, D any](res listing.Result[T], conv func(T) D) PageDTO[D] {
	content := make([]D, 0, len(res.Items))
	for _, item := range res.Items {
		content = append(content, conv(item))
	}
	return PageDTO[D]{
		Content:       content,
		TotalElements: res.Total,
		TotalPages:    res.PageCount,
		Number:        max(res.Page-1, 0),
		Size:          res.PageSize,
	}
}

// PageResult распаковывает конверт. TotalPages и TotalElements берутся как есть.
func PageResult[D, T any](p PageDTO[D], conv func(D) T) listing.Result[T] {
	items := make([]T, 0, len(p.Content))
	for _, d := range p.Content {
		items = append(items, conv(d))
	}
	return listing.Result[T]{
		Items:     items,
		Page:      p.Number + 1,
		PageSize:  p.Size,
		PageCount: p.TotalPages,
		Total:     p.TotalElements,
	}
}

// Convert применяет conv к каждому элементу, nil превращается в пустой срез
func Convert[S, D any](items []S, conv func(S) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, conv(item))
	}
	return out
}
