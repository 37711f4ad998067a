package iof

import "github.com/beevik/etree"

// EventClass is one competition class of an event together with its
// catalog fee references in ascending sequence order.
type EventClass struct {
	ID        uint64
	ShortName string
	FeeIDs    []uint64
}

// DecodeEventClass reads an EventClass element: required EventClassId
// and ClassShortName, plus any ClassEntryFee children.
func DecodeEventClass(el *etree.Element) (EventClass, error) {
	var ec EventClass
	var err error
	if ec.ID, err = requireUint(el, "EventClassId"); err != nil {
		return EventClass{}, err
	}
	if ec.ShortName, err = requireText(el, "ClassShortName"); err != nil {
		return EventClass{}, err
	}
	if ec.FeeIDs, err = sortedFeeIDs(el, "ClassEntryFee"); err != nil {
		return EventClass{}, err
	}
	return ec, nil
}
