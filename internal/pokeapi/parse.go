package pokeapi

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseListing maps a listing response body onto a Listing.
func ParseListing(body []byte) (Listing, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return Listing{}, err
	}

	count := doc.Get("count")
	if count.Type != gjson.Number {
		return Listing{}, shapeError("listing", "count")
	}
	results := doc.Get("results")
	if !results.IsArray() {
		return Listing{}, shapeError("listing", "results")
	}

	rows := results.Array()
	listing := Listing{
		Count:   int(count.Int()),
		Results: make([]ListingEntry, 0, len(rows)),
	}
	for i, row := range rows {
		name := row.Get("name")
		if name.Type != gjson.String || name.Str == "" {
			return Listing{}, shapeError("listing", fmt.Sprintf("results.%d.name", i))
		}
		listing.Results = append(listing.Results, ListingEntry{
			Name: name.Str,
			URL:  row.Get("url").String(),
		})
	}
	return listing, nil
}

// ParseDetail maps a pokemon response body onto a DetailRecord. Only id, name,
// height, weight, types[].type.name and sprites.front_default are read.
func ParseDetail(body []byte) (DetailRecord, error) {
	if _, err := parseDocument(body); err != nil {
		return DetailRecord{}, err
	}

	fields := gjson.GetManyBytes(body, "id", "name", "height", "weight", "types", "sprites.front_default")
	id, name, height, weight, types, sprite := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	for _, f := range []struct {
		path string
		ok   bool
	}{
		{"id", id.Type == gjson.Number},
		{"name", name.Type == gjson.String && name.Str != ""},
		{"height", height.Type == gjson.Number},
		{"weight", weight.Type == gjson.Number},
		{"types", types.IsArray()},
		{"sprites.front_default", sprite.Type == gjson.String || sprite.Type == gjson.Null},
	} {
		if !f.ok {
			return DetailRecord{}, shapeError("detail", f.path)
		}
	}

	record := DetailRecord{
		ID:        int(id.Int()),
		Name:      name.Str,
		Height:    int(height.Int()),
		Weight:    int(weight.Int()),
		SpriteURL: sprite.String(),
	}
	slots := types.Array()
	record.Types = make([]TypeSlot, 0, len(slots))
	for i, slot := range slots {
		typeName := slot.Get("type.name")
		if typeName.Type != gjson.String {
			return DetailRecord{}, shapeError("detail", fmt.Sprintf("types.%d.type.name", i))
		}
		record.Types = append(record.Types, TypeSlot{
			Slot:     int(slot.Get("slot").Int()),
			TypeName: typeName.Str,
		})
	}
	return record, nil
}

func parseDocument(body []byte) (gjson.Result, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: response is not valid JSON", ErrParse)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: response is not a JSON object", ErrParse)
	}
	return doc, nil
}

func shapeError(resource, path string) error {
	return fmt.Errorf("%w: %s field %q missing or mistyped", ErrParse, resource, path)
}
