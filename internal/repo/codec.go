package repo

import (
	"fmt"
	"strconv"

	"clubconnect/internal/itemstore"
	"clubconnect/internal/model"
)

// Attribute names of the persisted items.
const (
	attrClubID      = "clubId"
	attrEventID     = "eventId"
	attrName        = "name"
	attrDescription = "description"
	attrEventIDs    = "eventIds"
	attrTags        = "tags"
	attrAttendeeIDs = "attendeeIds"
	attrImageURL    = "imageUrl"
)

func clubKey(clubID int) itemstore.Key {
	return itemstore.Key{Name: attrClubID, Value: clubID}
}

func eventKey(eventID int) itemstore.Key {
	return itemstore.Key{Name: attrEventID, Value: eventID}
}

// EncodeClub flattens a club into its stored item. An empty event-id set is
// left out of the item entirely.
func EncodeClub(c model.Club) itemstore.Item {
	item := itemstore.Item{
		attrClubID:      itemstore.Number(c.ClubID),
		attrName:        itemstore.String(c.Name),
		attrDescription: itemstore.String(c.Description),
		attrImageURL:    itemstore.String(c.ImageURL),
	}
	if c.EventIDs.Len() > 0 {
		item[attrEventIDs] = itemstore.NumberSet(c.EventIDs)
	}
	return item
}

func DecodeClub(item itemstore.Item) (model.Club, error) {
	var (
		c   model.Club
		err error
	)
	if c.ClubID, err = requiredNumber(item, attrClubID); err != nil {
		return model.Club{}, err
	}
	if c.Name, err = requiredString(item, attrName); err != nil {
		return model.Club{}, err
	}
	if c.Description, err = requiredString(item, attrDescription); err != nil {
		return model.Club{}, err
	}
	if c.EventIDs, err = optionalNumberSet(item, attrEventIDs); err != nil {
		return model.Club{}, err
	}
	if c.ImageURL, err = optionalString(item, attrImageURL); err != nil {
		return model.Club{}, err
	}
	return c, nil
}

// EncodeEvent flattens an event into its stored item. Empty tag and attendee
// sets are left out.
func EncodeEvent(e model.Event) itemstore.Item {
	item := itemstore.Item{
		attrEventID:     itemstore.Number(e.EventID),
		attrName:        itemstore.String(e.Name),
		attrDescription: itemstore.String(e.Description),
		attrClubID:      itemstore.Number(e.ClubID),
		attrImageURL:    itemstore.String(e.ImageURL),
	}
	if e.Tags.Len() > 0 {
		item[attrTags] = itemstore.StringSet(e.Tags)
	}
	if e.AttendeeIDs.Len() > 0 {
		item[attrAttendeeIDs] = itemstore.NumberSet(e.AttendeeIDs)
	}
	return item
}

func DecodeEvent(item itemstore.Item) (model.Event, error) {
	var (
		e   model.Event
		err error
	)
	if e.EventID, err = requiredNumber(item, attrEventID); err != nil {
		return model.Event{}, err
	}
	if e.Name, err = requiredString(item, attrName); err != nil {
		return model.Event{}, err
	}
	if e.Description, err = requiredString(item, attrDescription); err != nil {
		return model.Event{}, err
	}
	if e.ClubID, err = requiredNumber(item, attrClubID); err != nil {
		return model.Event{}, err
	}
	if e.Tags, err = optionalStringSet(item, attrTags); err != nil {
		return model.Event{}, err
	}
	if e.AttendeeIDs, err = optionalNumberSet(item, attrAttendeeIDs); err != nil {
		return model.Event{}, err
	}
	if e.ImageURL, err = optionalString(item, attrImageURL); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// lookup resolves presence and kind of one attribute. Absent optional
// attributes are turned into zero values by the optional* helpers, so no
// caller outside this file ever checks for a missing key.
func lookup(item itemstore.Item, name string, kind itemstore.Kind) (itemstore.Value, bool, error) {
	v, ok := item[name]
	if !ok {
		return itemstore.Value{}, false, nil
	}
	if v.Kind != kind {
		return itemstore.Value{}, false, fmt.Errorf("%w: attribute %q is %s, want %s", ErrValidation, name, v.Kind, kind)
	}
	return v, true, nil
}

func requiredString(item itemstore.Item, name string) (string, error) {
	v, ok, err := lookup(item, name, itemstore.KindString)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: missing attribute %q", ErrValidation, name)
	}
	return v.S, nil
}

func optionalString(item itemstore.Item, name string) (string, error) {
	v, _, err := lookup(item, name, itemstore.KindString)
	return v.S, err
}

func requiredNumber(item itemstore.Item, name string) (int, error) {
	v, ok, err := lookup(item, name, itemstore.KindNumber)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: missing attribute %q", ErrValidation, name)
	}
	return parseNumber(name, v.S)
}

func optionalNumberSet(item itemstore.Item, name string) (model.Set[int], error) {
	v, _, err := lookup(item, name, itemstore.KindNumberSet)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(v.Set))
	for _, raw := range v.Set {
		n, err := parseNumber(name, raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, n)
	}
	return model.NewSet(ids...), nil
}

func optionalStringSet(item itemstore.Item, name string) (model.Set[string], error) {
	v, _, err := lookup(item, name, itemstore.KindStringSet)
	if err != nil {
		return nil, err
	}
	return model.NewSet(v.Set...), nil
}

func parseNumber(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %q: %q is not an integer", ErrValidation, name, raw)
	}
	return n, nil
}
