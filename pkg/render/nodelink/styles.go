package nodelink

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/diaviz/pkg/errors"
)

// DefaultColorScheme is the Graphviz qualitative palette shared by all
// built-in categories.
const DefaultColorScheme = "accent5"

// maxColorSlot is the largest Brewer scheme size Graphviz ships.
const maxColorSlot = 12

// Built-in category names.
const (
	CategorySource    = "Source"
	CategoryTransform = "Transform"
	CategoryAction    = "Sink/Action"
	CategoryCache     = "Cache"
	CategoryCollapse  = "Collapse"
)

// CategoryOther names the labels no category claims. It is reserved and
// cannot name a configured category.
const CategoryOther = "other"

// Category groups operator labels that share a presentation.
type Category struct {
	Name   string   `toml:"name"`
	Color  int      `toml:"color"` // 1-based slot in the color scheme
	Shape  string   `toml:"shape"` // Graphviz node shape
	Labels []string `toml:"labels"`
}

// Styles maps operator labels to categories. Build one with [DefaultStyles],
// [ParseStyles] or [LoadStyles]; the zero value classifies nothing.
type Styles struct {
	ColorScheme string     `toml:"colorscheme"`
	Categories  []Category `toml:"category"`

	byLabel map[string]int
}

// DefaultStyles returns the built-in Thrill operator table.
func DefaultStyles() *Styles {
	s := &Styles{
		ColorScheme: DefaultColorScheme,
		Categories: []Category{
			{
				Name:   CategorySource,
				Color:  1,
				Shape:  "invhouse",
				Labels: []string{"ReadLines", "ReadBinary", "Generate", "GenerateFile", "Distribute", "DistributeFile"},
			},
			{
				Name:  CategoryTransform,
				Color: 2,
				Shape: "box",
				Labels: []string{"PrefixSum", "ReduceByKey", "ReducePair", "ReduceToIndex", "GroupByKey",
					"GroupToIndex", "Merge", "Sort", "Window", "Zip"},
			},
			{
				Name:  CategoryAction,
				Color: 3,
				Shape: "house",
				Labels: []string{"AllGather", "Gather", "Size", "AllReduce", "Sum", "Min", "Max",
					"WriteBinary", "WriteLines", "WriteLinesMany"},
			},
			{Name: CategoryCache, Color: 4, Shape: "oval", Labels: []string{"Cache"}},
			{Name: CategoryCollapse, Color: 5, Shape: "oval", Labels: []string{"Collapse"}},
		},
	}
	s.index()
	return s
}

// ParseStyles decodes a TOML style table and validates it:
//
//	colorscheme = "set39"
//
//	[[category]]
//	name   = "Source"
//	color  = 1
//	shape  = "invhouse"
//	labels = ["ReadLines", "Generate"]
//
// The decoded categories replace the built-in table. colorscheme defaults to
// [DefaultColorScheme].
func ParseStyles(data []byte) (*Styles, error) {
	var s Styles
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode styles")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown style key %q", undecoded[0].String())
	}
	if s.ColorScheme == "" {
		s.ColorScheme = DefaultColorScheme
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.index()
	return &s, nil
}

// LoadStyles reads and parses the TOML style table at path.
func LoadStyles(path string) (*Styles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read styles")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read styles")
	}
	return ParseStyles(data)
}

// Validate checks that every category is usable, that category names are
// unique and not [CategoryOther], and that no label belongs to two
// categories.
func (s *Styles) Validate() error {
	owner := make(map[string]string)
	names := make(map[string]bool)
	for i, c := range s.Categories {
		if c.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "category %d: name is required", i+1)
		}
		if c.Name == CategoryOther {
			return errors.New(errors.ErrCodeInvalidConfig, "category %d: name %q is reserved", i+1, CategoryOther)
		}
		if names[c.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "category %s defined twice", c.Name)
		}
		names[c.Name] = true
		if c.Shape == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "category %s: shape is required", c.Name)
		}
		if c.Color < 1 || c.Color > maxColorSlot {
			return errors.New(errors.ErrCodeInvalidConfig, "category %s: color %d not in 1..%d", c.Name, c.Color, maxColorSlot)
		}
		for _, l := range c.Labels {
			if prev, dup := owner[l]; dup {
				return errors.New(errors.ErrCodeInvalidConfig, "label %s in both %s and %s", l, prev, c.Name)
			}
			owner[l] = c.Name
		}
	}
	return nil
}

// Classify returns the category for label. Matching is exact and
// case-sensitive.
func (s *Styles) Classify(label string) (Category, bool) {
	if s == nil || s.byLabel == nil {
		return Category{}, false
	}
	i, ok := s.byLabel[label]
	if !ok {
		return Category{}, false
	}
	return s.Categories[i], true
}

// Attrs returns the DOT attributes for label, without the label attribute
// itself. Unclassified labels yield nil.
func (s *Styles) Attrs(label string) []string {
	c, ok := s.Classify(label)
	if !ok {
		return nil
	}
	return []string{
		"colorscheme=" + s.ColorScheme,
		"style=filled",
		"color=" + strconv.Itoa(c.Color),
		"shape=" + c.Shape,
	}
}

func (s *Styles) index() {
	s.byLabel = make(map[string]int)
	for i, c := range s.Categories {
		for _, l := range c.Labels {
			if _, dup := s.byLabel[l]; !dup {
				s.byLabel[l] = i
			}
		}
	}
}
