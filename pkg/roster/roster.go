// Package roster holds the static organisation data: which employees belong
// to which staff area, which stores belong to which store area, and the
// colors reports use for stores and cell kinds.
package roster

import (
	"fmt"
	"os"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"gopkg.in/yaml.v3"
)

// NoArea is the store area meaning "no store".
const NoArea = "なし"

// Group is a named, ordered list of names.
type Group struct {
	Name    string   `yaml:"name" json:"name"`
	Members []string `yaml:"members" json:"members"`
}

// Roster is the organisation configuration.
type Roster struct {
	StaffAreas []Group  `yaml:"staff_areas" json:"staff_areas"`
	StoreAreas []Group  `yaml:"store_areas" json:"store_areas"`
	Palette    *Palette `yaml:"palette" json:"-"`
}

// Load reads a roster YAML file. Missing palette entries fall back to the
// default palette.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes roster YAML.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(r.StaffAreas) == 0 {
		return nil, fmt.Errorf("roster has no staff areas")
	}
	r.Palette = DefaultPalette().Merge(r.Palette)
	return &r, nil
}

// Employees returns every employee in area order.
func (r *Roster) Employees() []string {
	return flatten(r.StaffAreas)
}

// Stores returns every store in area order.
func (r *Roster) Stores() []string {
	return flatten(r.StoreAreas)
}

// StaffArea returns the employees of one area, or every employee when area is
// empty or unknown.
func (r *Roster) StaffArea(area string) []string {
	for _, g := range r.StaffAreas {
		if g.Name == area {
			return g.Members
		}
	}
	return r.Employees()
}

// StoreArea returns the stores of one area.
func (r *Roster) StoreArea(area string) []string {
	for _, g := range r.StoreAreas {
		if g.Name == area {
			return g.Members
		}
	}
	return nil
}

// StoreAreaNames lists store areas that hold stores, skipping NoArea.
func (r *Roster) StoreAreaNames() []string {
	var out []string
	for _, g := range r.StoreAreas {
		if g.Name != NoArea {
			out = append(out, g.Name)
		}
	}
	return out
}

// StaffAreaNames lists staff areas in order.
func (r *Roster) StaffAreaNames() []string {
	out := make([]string, len(r.StaffAreas))
	for i, g := range r.StaffAreas {
		out[i] = g.Name
	}
	return out
}

// HasEmployee reports whether name is on the roster.
func (r *Roster) HasEmployee(name string) bool {
	return contains(r.Employees(), name)
}

// HasStore reports whether name is a configured store.
func (r *Roster) HasStore(name string) bool {
	return contains(r.Stores(), name)
}

func flatten(groups []Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Members...)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Palette holds every color renderers need, as #RRGGBB strings.
type Palette struct {
	Text          string                        `yaml:"text"`
	KindText      string                        `yaml:"kind_text"`
	Header        string                        `yaml:"header"`
	StoreFallback string                        `yaml:"store_fallback"`
	Filled        string                        `yaml:"filled"`
	Rows          map[calendar.RowBucket]string `yaml:"rows"`
	Buckets       map[shiftcode.Bucket]string   `yaml:"buckets"`
	Stores        map[string]string             `yaml:"stores"`
}

// DefaultPalette returns the built-in colors.
func DefaultPalette() *Palette {
	return &Palette{
		Text:          "#373737",
		KindText:      "#595959",
		Header:        "#808080",
		StoreFallback: "#373737",
		Filled:        "#C6EFCE",
		Rows: map[calendar.RowBucket]string{
			calendar.RowHoliday:  "#FFE4E1",
			calendar.RowSaturday: "#E0F0FF",
		},
		Buckets: map[shiftcode.Bucket]string{
			shiftcode.BucketDayOff:   "#FFC7CE",
			shiftcode.BucketKanoya:   "#FFF2CC",
			shiftcode.BucketKagokita: "#E2EFDA",
			shiftcode.BucketRecruit:  "#EADCF8",
			shiftcode.BucketOther:    "#EADCF8",
		},
		Stores: map[string]string{},
	}
}

// Merge overlays the non-empty entries of o on p and returns p.
func (p *Palette) Merge(o *Palette) *Palette {
	if o == nil {
		return p
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Text, o.Text)
	set(&p.KindText, o.KindText)
	set(&p.Header, o.Header)
	set(&p.StoreFallback, o.StoreFallback)
	set(&p.Filled, o.Filled)
	for k, v := range o.Rows {
		p.Rows[k] = v
	}
	for k, v := range o.Buckets {
		p.Buckets[k] = v
	}
	for k, v := range o.Stores {
		p.Stores[k] = v
	}
	return p
}

// StoreColor returns the color of a store, or the fallback for unknown stores.
func (p *Palette) StoreColor(store string) string {
	if c, ok := p.Stores[store]; ok && c != "" {
		return c
	}
	return p.StoreFallback
}

// BucketColor returns the background of a cell bucket; "" means no fill.
func (p *Palette) BucketColor(b shiftcode.Bucket) string {
	return p.Buckets[b]
}

// RowColor returns the background of a day row; "" means no fill.
func (p *Palette) RowColor(b calendar.RowBucket) string {
	return p.Rows[b]
}

// LineColor returns the text color of a rendered cell line.
func (p *Palette) LineColor(l shiftcode.Line) string {
	switch {
	case l.Store != "":
		return p.StoreColor(l.Store)
	case l.Head:
		return p.KindText
	}
	return p.Text
}
