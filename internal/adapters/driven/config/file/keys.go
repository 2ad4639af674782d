package file

import "strings"

// flatten turns TOML tables into dot keys: {"a": {"b": 1}} is {"a.b": 1}.
func flatten(tables map[string]any) map[string]any {
	flat := make(map[string]any)

	type frame struct {
		prefix string
		table  map[string]any
	}
	stack := []frame{{table: tables}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for name, value := range top.table {
			key := name
			if top.prefix != "" {
				key = top.prefix + "." + name
			}
			if sub, ok := value.(map[string]any); ok {
				stack = append(stack, frame{prefix: key, table: sub})
				continue
			}
			flat[key] = value
		}
	}
	return flat
}

// nest is the inverse of flatten, so saved files use TOML tables.
func nest(flat map[string]any) map[string]any {
	tables := make(map[string]any)

	for key, value := range flat {
		path := strings.Split(key, ".")
		leaf := path[len(path)-1]

		table := tables
		for _, name := range path[:len(path)-1] {
			sub, ok := table[name].(map[string]any)
			if !ok {
				sub = make(map[string]any)
				table[name] = sub
			}
			table = sub
		}
		table[leaf] = value
	}
	return tables
}
