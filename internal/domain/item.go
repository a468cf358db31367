package domain

// Item is an entry of the item catalog served as item://{id}.
type Item struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// ItemStore looks up catalog items.
type ItemStore interface {
	Get(id string) (Item, error)
	List() []Item
}
