package web

import (
	"errors"
	"html/template"
)

var errDictArgs = errors.New("dict needs key and value pairs with string keys")

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
		"dict": dict,
	}
}

// dict builds a map from key and value pairs so partials can take more
// than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errDictArgs
	}

	m := make(map[string]any, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errDictArgs
		}

		m[key] = pairs[i+1]
	}

	return m, nil
}
