package assets

import (
	"errors"
	"strconv"
	"strings"
)

const DefaultPageSize = 20

var ErrPageNotFound = errors.New("invalid page")

// PageRequest is a 1-based page selector; Last picks the final page.
type PageRequest struct {
	Number int
	Last   bool
	Size   int
}

func ParsePageRequest(raw string) (PageRequest, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return PageRequest{Number: 1, Size: DefaultPageSize}, nil
	case strings.EqualFold(raw, "last"):
		return PageRequest{Last: true, Size: DefaultPageSize}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return PageRequest{}, ErrPageNotFound
	}
	return PageRequest{Number: n, Size: DefaultPageSize}, nil
}

// resolve maps the request onto a result set of total rows.
func (p PageRequest) resolve(total int64) (number, size, numPages int, err error) {
	size = p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	numPages = int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}
	number = p.Number
	if p.Last {
		number = numPages
	}
	if number < 1 || number > numPages {
		return 0, 0, 0, ErrPageNotFound
	}
	return number, size, numPages, nil
}

type Page[T any] struct {
	Items    []T
	Number   int
	Size     int
	Total    int64
	NumPages int
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

// EmptyPage resolves req against an empty result; only page 1 (or last) exists.
func EmptyPage[T any](req PageRequest) (*Page[T], error) {
	number, size, numPages, err := req.resolve(0)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Items: []T{}, Number: number, Size: size, NumPages: numPages}, nil
}
