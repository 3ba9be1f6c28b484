package sexy

import "fmt"

// Match reports whether actual matches pattern. A pattern matches a datum
// of the same shape; "..." matches any datum, and as the last item of a
// list or array it matches any number of remaining items.
//
// The returned error names the path of the first mismatch, e.g.
// "root[2][1]: expected "b" but got "c"".
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("%s: expected %s %s but got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}

	switch pattern.Type {
	case NodeList, NodeArray:
		items := pattern.Items
		rest := len(items) > 0 && items[len(items)-1].Type == NodeEllipsis
		if rest {
			items = items[:len(items)-1]
			if len(actual.Items) < len(items) {
				return fmt.Errorf("%s: expected at least %d items but got %d in %s", path, len(items), len(actual.Items), actual)
			}
		} else if len(actual.Items) != len(items) {
			return fmt.Errorf("%s: expected %d items but got %d in %s", path, len(items), len(actual.Items), actual)
		}
		for i, item := range items {
			if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	default:
		if pattern.Text != actual.Text {
			return fmt.Errorf("%s: expected %s but got %s", path, pattern, actual)
		}
		return nil
	}
}
