package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ListQuery параметры списка слотов: ?from&to (RFC3339) &limit&offset
type ListQuery struct {
	From   *time.Time
	To     *time.Time
	Limit  *int
	Offset *int
}

// ParseListQuery разбирает параметры списка, отсутствующие остаются nil
func ParseListQuery(r *http.Request) (ListQuery, error) {
	var (
		q   ListQuery
		err error
	)
	if q.From, err = QueryTime(r, "from"); err != nil {
		return ListQuery{}, err
	}
	if q.To, err = QueryTime(r, "to"); err != nil {
		return ListQuery{}, err
	}
	if q.Limit, err = QueryInt(r, "limit"); err != nil {
		return ListQuery{}, err
	}
	if q.Offset, err = QueryInt(r, "offset"); err != nil {
		return ListQuery{}, err
	}
	return q, nil
}

// QueryTime необязательный RFC3339 параметр
func QueryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidQuery, name, err)
	}
	t = t.UTC()
	return &t, nil
}

// QueryInt необязательный целочисленный параметр
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidQuery, name, err)
	}
	return &n, nil
}
