package pokeapi

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/pokedex/internal/query"
)

// Registered query names.
const (
	EndpointList   = "pokemonList"
	EndpointDetail = "pokemonDetail"
)

// ListPageSize is the fixed page size of the listing query.
const ListPageSize = 9

var errMissingName = errors.New("pokemon name is required")

// ListKey identifies the listing query.
func ListKey() query.Key {
	return query.NewKey(EndpointList, nil)
}

// DetailKey identifies the detail query for name. Names are matched the way the
// API stores them: trimmed and lower-case.
func DetailKey(name string) query.Key {
	return query.NewKey(EndpointDetail, map[string]string{"name": normalizeName(name)})
}

// Endpoints returns the query definitions served by this package.
func Endpoints() []query.Endpoint {
	return []query.Endpoint{
		{
			Name:  EndpointList,
			Build: buildListRequest,
			Parse: func(body []byte) (any, error) {
				listing, err := ParseListing(body)
				if err != nil {
					return nil, err
				}
				return listing, nil
			},
		},
		{
			Name:  EndpointDetail,
			Build: buildDetailRequest,
			Parse: func(body []byte) (any, error) {
				record, err := ParseDetail(body)
				if err != nil {
					return nil, err
				}
				return record, nil
			},
		},
	}
}

func buildListRequest(map[string]string) (query.Request, error) {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(ListPageSize))
	return query.Request{Path: "pokemon", Query: values}, nil
}

func buildDetailRequest(params map[string]string) (query.Request, error) {
	name := normalizeName(params["name"])
	if name == "" {
		return query.Request{}, errMissingName
	}
	return query.Request{Path: "pokemon/" + name + "/"}, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
