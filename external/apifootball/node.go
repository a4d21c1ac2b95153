package apifootball

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// node walks one decoded JSON object. Required lookups record the first
// failure and turn every later lookup into a no-op, so a parser can read all
// of its fields and check err() once at the end. Child nodes share the
// failure of their parent.
type node struct {
	path  string
	data  map[string]any
	state *readState
}

type readState struct {
	err *FieldError
}

func newNode(path string, value any) node {
	n := node{path: path, state: &readState{}}
	obj, ok := value.(map[string]any)
	if !ok {
		n.fail(path, describeMismatch("object", value))
		return n
	}
	n.data = obj
	return n
}

func (n node) err() error {
	if n.state == nil || n.state.err == nil {
		return nil
	}
	return n.state.err
}

func (n node) failed() bool {
	return n.state != nil && n.state.err != nil
}

func (n node) fail(path, reason string) {
	if n.state != nil && n.state.err == nil {
		n.state.err = &FieldError{Path: path, Reason: reason}
	}
}

func (n node) child(key string) string {
	return n.path + "." + key
}

// lookup returns the value at key, treating an explicit null as absent.
func (n node) lookup(key string) (any, bool) {
	if n.data == nil {
		return nil, false
	}
	value, ok := n.data[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func (n node) require(key string) (any, bool) {
	if n.failed() {
		return nil, false
	}
	value, ok := n.lookup(key)
	if !ok {
		n.fail(n.child(key), "missing")
		return nil, false
	}
	return value, true
}

func (n node) object(key string) node {
	out := node{path: n.child(key), state: n.state}
	value, ok := n.require(key)
	if !ok {
		return out
	}
	obj, ok := value.(map[string]any)
	if !ok {
		n.fail(out.path, describeMismatch("object", value))
		return out
	}
	out.data = obj
	return out
}

// first returns the first element of the array at key.
func (n node) first(key string) node {
	out := node{path: n.child(key) + "[0]", state: n.state}
	value, ok := n.require(key)
	if !ok {
		return out
	}
	items, ok := value.([]any)
	if !ok {
		n.fail(n.child(key), describeMismatch("array", value))
		return out
	}
	if len(items) == 0 {
		n.fail(n.child(key), "empty array")
		return out
	}
	obj, ok := items[0].(map[string]any)
	if !ok {
		n.fail(out.path, describeMismatch("object", items[0]))
		return out
	}
	out.data = obj
	return out
}

func (n node) getString(key string) string {
	value, ok := n.require(key)
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		n.fail(n.child(key), describeMismatch("string", value))
		return ""
	}
	return strings.TrimSpace(text)
}

func (n node) getInt64(key string) int64 {
	value, ok := n.require(key)
	if !ok {
		return 0
	}
	out, ok := asInt64(value)
	if !ok {
		n.fail(n.child(key), describeMismatch("integer", value))
		return 0
	}
	return out
}

func (n node) getInt(key string) int {
	return int(n.getInt64(key))
}

// optionalObject never records a failure; a missing, null or non-object
// value reports false.
func (n node) optionalObject(key string) (node, bool) {
	out := node{path: n.child(key), state: n.state}
	value, ok := n.lookup(key)
	if !ok {
		return out, false
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return out, false
	}
	out.data = obj
	return out, true
}

func (n node) stringOr(key, fallback string) string {
	value, ok := n.lookup(key)
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(text)
}

func (n node) optionalInt(key string) *int {
	value, ok := n.lookup(key)
	if !ok {
		return nil
	}
	out, ok := asInt64(value)
	if !ok {
		return nil
	}
	v := int(out)
	return &v
}

func (n node) intOr(key string, fallback int) int {
	if v := n.optionalInt(key); v != nil {
		return *v
	}
	return fallback
}

func asInt64(value any) (int64, bool) {
	switch typed := value.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) || typed != math.Trunc(typed) {
			return 0, false
		}
		return int64(typed), true
	case float32:
		return asInt64(float64(typed))
	case int:
		return int64(typed), true
	case int64:
		return typed, true
	case interface{ Int64() (int64, error) }:
		v, err := typed.Int64()
		return v, err == nil
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		return v, err == nil
	default:
		return 0, false
	}
}

func describeMismatch(want string, got any) string {
	return fmt.Sprintf("expected %s, got %T", want, got)
}
