package pokeapi

// ListingEntry is one row of the paginated listing.
type ListingEntry struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Listing mirrors GET pokemon?limit=N.
type Listing struct {
	Count   int            `json:"count" yaml:"count"`
	Results []ListingEntry `json:"results" yaml:"results"`
}

// Names returns the entry names in listing order.
func (l Listing) Names() []string {
	names := make([]string, 0, len(l.Results))
	for _, entry := range l.Results {
		names = append(names, entry.Name)
	}
	return names
}

// TypeSlot is one elemental type of a Pokémon.
type TypeSlot struct {
	Slot     int    `json:"slot" yaml:"slot"`
	TypeName string `json:"type" yaml:"type"`
}

// DetailRecord is the subset of GET pokemon/{name}/ the views consume.
type DetailRecord struct {
	ID        int        `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Height    int        `json:"height" yaml:"height"`
	Weight    int        `json:"weight" yaml:"weight"`
	Types     []TypeSlot `json:"types" yaml:"types"`
	SpriteURL string     `json:"sprite_url" yaml:"sprite_url"`
}

// TypeNames returns the type names in slot order as delivered by the API.
func (d DetailRecord) TypeNames() []string {
	names := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		names = append(names, t.TypeName)
	}
	return names
}
