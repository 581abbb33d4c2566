package opt

import (
	"net/url"
	"strconv"
	"strings"

	// Packages
	responses "github.com/mutablelogic/go-responses"
	schema "github.com/mutablelogic/go-responses/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which sets query parameters for a request
type Opt func(*opts) error

// set of options
type opts struct {
	url.Values
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Query parameter keys
const (
	Include       = "include[]"
	StartingAfter = "starting_after"
	Stream        = "stream"
	Limit         = "limit"
	Order         = "order"
	After         = "after"
	Before        = "before"
)

const (
	maxLimit = 100
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*opts, error) {
	opts := &opts{Values: make(url.Values)}
	for _, opt := range o {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query returns the values for the given keys, ignoring any other options
func (o *opts) Query(keys ...string) url.Values {
	query := make(url.Values)
	for _, key := range keys {
		if value, ok := o.Values[key]; ok {
			query[key] = value
		}
	}
	return query
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithInclude requests additional output data
func WithInclude(include ...schema.Includable) Opt {
	return func(o *opts) error {
		for _, v := range include {
			if v == "" {
				return responses.ErrBadParameter.With("empty include")
			}
			o.Values.Add(Include, string(v))
		}
		return nil
	}
}

// WithStartingAfter resumes a streamed response after the event with the
// given sequence number
func WithStartingAfter(sequence uint64) Opt {
	return func(o *opts) error {
		o.Values.Set(StartingAfter, strconv.FormatUint(sequence, 10))
		return nil
	}
}

// WithLimit sets the number of items in a page, between 1 and 100
func WithLimit(limit uint) Opt {
	return func(o *opts) error {
		if limit == 0 || limit > maxLimit {
			return responses.ErrBadParameter.Withf("limit must be between 1 and %d", maxLimit)
		}
		o.Values.Set(Limit, strconv.FormatUint(uint64(limit), 10))
		return nil
	}
}

// WithOrder sets the order of items in a page, "asc" or "desc"
func WithOrder(order string) Opt {
	return func(o *opts) error {
		switch order = strings.ToLower(strings.TrimSpace(order)); order {
		case "asc", "desc":
			o.Values.Set(Order, order)
			return nil
		default:
			return responses.ErrBadParameter.Withf("invalid order %q", order)
		}
	}
}

// WithAfter returns items after the item with the given identifier
func WithAfter(id string) Opt {
	return withId(After, id)
}

// WithBefore returns items before the item with the given identifier
func WithBefore(id string) Opt {
	return withId(Before, id)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// withId sets key to an item identifier, replacing any earlier value
func withId(key, id string) Opt {
	return func(o *opts) error {
		if id = strings.TrimSpace(id); id == "" {
			return responses.ErrBadParameter.Withf("empty %s", key)
		}
		o.Values.Set(key, id)
		return nil
	}
}
