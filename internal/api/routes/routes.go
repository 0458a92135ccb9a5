// Package routes maps route names used by the admin workflow to URL patterns.
package routes

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"backoffice/internal/admin"
)

const (
	Customers          = admin.RouteCustomers
	CustomerUpdateView = admin.RouteCustomerUpdateView
	CustomerUpdate     = "admin.customer.update"
	CustomerDelete     = "admin.customer.delete"
	AddressDelete      = "admin.address.delete"
)

var patterns = map[string]string{
	Customers:          "/admin/customers",
	CustomerUpdateView: "/admin/customer/update/{customer_id}",
	CustomerUpdate:     "/admin/customer/update/{customer_id}",
	CustomerDelete:     "/admin/customer/delete",
	AddressDelete:      "/admin/address/delete",
}

var placeholder = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Pattern returns the chi pattern registered for name.
func Pattern(name string) string {
	p, ok := patterns[name]
	if !ok {
		panic(fmt.Sprintf("unknown route %q", name))
	}
	return p
}

// URLFor builds the path of a named route. Params matching a placeholder fill
// the path, the rest go to the query string.
func URLFor(name string, params map[string]any) (string, error) {
	pattern, ok := patterns[name]
	if !ok {
		return "", fmt.Errorf("unknown route %q", name)
	}

	used := make(map[string]bool)
	var missing []string
	path := placeholder.ReplaceAllStringFunc(pattern, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := params[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		used[key] = true
		return url.PathEscape(fmt.Sprint(v))
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("route %q is missing parameters: %s", name, strings.Join(missing, ", "))
	}

	query := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		if !used[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		query.Set(k, fmt.Sprint(params[k]))
	}
	if len(query) == 0 {
		return path, nil
	}
	return path + "?" + query.Encode(), nil
}
