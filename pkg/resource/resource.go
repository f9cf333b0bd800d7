package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidResource is returned when a resource record is malformed.
var ErrInvalidResource = errors.New("resource: invalid resource")

// Resource is an entity events can be assigned to.
type Resource struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Type   Type   `json:"type" yaml:"type"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Patch is a partial update of a resource; nil fields are left untouched.
type Patch struct {
	Name   *string
	Type   *Type
	Color  *string
	Avatar *string
}

// Apply returns a copy of r with the patch applied.
func (p Patch) Apply(r Resource) Resource {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Color != nil {
		r.Color = *p.Color
	}
	if p.Avatar != nil {
		r.Avatar = *p.Avatar
	}
	return r
}

// Validate checks that r has an id and, when set, a parseable color. The
// color is rendering-only but a garbage value is still rejected early.
func Validate(r Resource) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidResource)
	}
	if r.Color != "" {
		if _, err := NormalizeColor(r.Color); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidResource, r.ID, err)
		}
	}
	return nil
}

// NormalizeColor parses a hex color ("#f80", "#ff8800", "ff8800") and returns
// it in canonical lower-case "#rrggbb" form.
func NormalizeColor(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	if len(raw) == 4 {
		raw = "#" + strings.Repeat(raw[1:2], 2) + strings.Repeat(raw[2:3], 2) + strings.Repeat(raw[3:4], 2)
	}
	c, err := colorful.Hex(raw)
	if err != nil {
		return "", fmt.Errorf("color %q: %w", raw, err)
	}
	return c.Hex(), nil
}
