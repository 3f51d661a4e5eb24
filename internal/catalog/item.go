package catalog

import "strconv"

type Item struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

func synthesize(id int, selected bool) Item {
	return Item{
		ID:       id,
		Text:     "Item " + strconv.Itoa(id),
		Selected: selected,
	}
}
