package domain

// Item is a single logical entry shown by the carousel
type Item struct {
	Title    string `toml:"title" mapstructure:"title"`
	Subtitle string `toml:"subtitle,omitempty" mapstructure:"subtitle"`
	Color    string `toml:"color,omitempty" mapstructure:"color"` // lipgloss color: ANSI index ("99") or hex ("#ff8800")
}

// Label returns the text used when an item has no title
func (i Item) Label() string {
	if i.Title == "" {
		return "untitled"
	}
	return i.Title
}
