package models

import "time"

// BuiltinCategory is one of the fixed gift categories that ship with the app.
type BuiltinCategory string

const (
	CategoryGeneral     BuiltinCategory = "general"
	CategoryBirthday    BuiltinCategory = "birthday"
	CategoryHoliday     BuiltinCategory = "holiday"
	CategoryAnniversary BuiltinCategory = "anniversary"
	CategoryJustBecause BuiltinCategory = "just_because"
)

// BuiltinCategories lists the fixed categories in display order.
var BuiltinCategories = []BuiltinCategory{
	CategoryGeneral,
	CategoryBirthday,
	CategoryHoliday,
	CategoryAnniversary,
	CategoryJustBecause,
}

// Category is a tagged variant: either a builtin category or a reference to
// a user-defined CustomCategory by id. Exactly one side is set; the zero
// value resolves to the default category.
type Category struct {
	Builtin  BuiltinCategory `json:"builtin,omitempty"`
	CustomID string          `json:"custom_id,omitempty"`
}

// BuiltinCat returns a Category for a fixed builtin case.
func BuiltinCat(b BuiltinCategory) Category {
	return Category{Builtin: b}
}

// CustomCat returns a Category referencing a custom category by id.
func CustomCat(id string) Category {
	return Category{CustomID: id}
}

// DefaultCategory is the fallback used when a referenced custom category
// no longer exists.
var DefaultCategory = Category{Builtin: CategoryGeneral}

// IsCustom reports whether the category references a custom category.
func (c Category) IsCustom() bool {
	return c.CustomID != ""
}

// IsValidBuiltin reports whether b is one of the fixed categories.
func IsValidBuiltin(b BuiltinCategory) bool {
	for _, known := range BuiltinCategories {
		if b == known {
			return true
		}
	}
	return false
}

// CustomCategory is a user-defined gift category. It is stored in its own
// collection and referenced from gifts by id.
type CustomCategory struct {
	Meta
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

func (c CustomCategory) WithIdentity(id string, now time.Time) CustomCategory {
	c.Meta = c.Meta.identified(id, now)
	return c
}

func (c CustomCategory) WithTimestamps(created, modified time.Time) CustomCategory {
	c.Meta = c.Meta.stamped(created, modified)
	return c
}

// CategoryInfo is the displayable resolution of a Category.
type CategoryInfo struct {
	Name  string
	Icon  string
	Color string
}

// ResolveCategory resolves a category against the known custom categories.
// A dangling custom reference falls back to the default builtin category
// rather than producing an empty result.
func ResolveCategory(c Category, custom []CustomCategory) CategoryInfo {
	if c.IsCustom() {
		for _, cc := range custom {
			if cc.ID == c.CustomID {
				return CategoryInfo{Name: cc.Name, Icon: cc.Icon, Color: cc.Color}
			}
		}
		return ResolveCategory(DefaultCategory, nil)
	}
	b := c.Builtin
	if b == "" || !IsValidBuiltin(b) {
		b = DefaultCategory.Builtin
	}
	return CategoryInfo{Name: string(b), Icon: builtinIcons[b]}
}

var builtinIcons = map[BuiltinCategory]string{
	CategoryGeneral:     "gift",
	CategoryBirthday:    "cake",
	CategoryHoliday:     "tree",
	CategoryAnniversary: "heart",
	CategoryJustBecause: "sparkles",
}
